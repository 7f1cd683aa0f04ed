// Copyright 2026 The OfsaaValidator Authors
// SPDX-License-Identifier: MIT

// Package resolve matches an input filename to a table definition when no
// table name is given explicitly. Source-system filenames are inconsistent
// (prefixes, date suffixes, abbreviations), so resolution walks an ordered
// chain of strategies that trades precision for recall: exact match first,
// fuzzy keyword matching last.
package resolve

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/GooferByte/OfsaaValidator/internal/schema"
)

//go:embed tables.toml
var tablesTOML []byte

// matchTables is the static associative data behind strategies 2 and 4:
// known name variations and keyword fallbacks, in declaration order.
type matchTables struct {
	Variations map[string]string `toml:"variations"`
	Keywords   []keywordEntry    `toml:"keyword"`
}

type keywordEntry struct {
	Pattern string   `toml:"pattern"`
	Tables  []string `toml:"tables"`
}

var rules = loadRules()

func loadRules() matchTables {
	var mt matchTables
	if err := toml.Unmarshal(tablesTOML, &mt); err != nil {
		// The document is embedded at build time; a parse failure is a
		// programming error, not a runtime condition.
		panic(fmt.Sprintf("resolve: embedded tables.toml: %v", err))
	}
	return mt
}

var (
	datePattern      = regexp.MustCompile(`_?\d{8}`)
	frequencyPattern = regexp.MustCompile(`(?i)_?(DLY|MLY|DAILY|MONTHLY|WEEKLY)_?\d*`)
)

// UnknownTableError is returned when no strategy matched. It enumerates the
// available table names so the caller can supply one explicitly.
type UnknownTableError struct {
	Filename  string
	Available []string
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("cannot auto-detect table name from %q (available tables: %s; specify one with --table)",
		e.Filename, strings.Join(e.Available, ", "))
}

// Clean strips the noise the source system appends to filenames: the
// extension, YYYYMMDD date tokens, frequency tokens (DLY, MLY, DAILY,
// MONTHLY, WEEKLY with optional trailing digits), and stray underscores.
// The result is upper-cased for case-insensitive comparison.
func Clean(filename string) string {
	stem := filepath.Base(filename)
	stem = strings.TrimSuffix(stem, filepath.Ext(stem))
	stem = strings.ToUpper(stem)
	stem = datePattern.ReplaceAllString(stem, "")
	stem = frequencyPattern.ReplaceAllString(stem, "")
	return strings.Trim(stem, "_")
}

// Resolve picks the table definition matching the given filename. The
// strategy chain runs in order, first success wins:
//
//  1. exact match of the cleaned filename against a known table name
//  2. known name variations (e.g. ACCTADDR -> AccountAddress)
//  3. substring containment, longest known name first
//  4. keyword fallback (ADDRESS, ACCOUNT, CUSTOMER, ...)
//  5. a single loaded table matches unconditionally
//
// All comparisons are case-insensitive. If nothing matches, Resolve returns
// an *UnknownTableError listing the available tables.
func Resolve(filename string, tables *schema.Set) (string, error) {
	clean := Clean(filename)

	// 1. Exact match.
	if t, ok := tables.GetFold(clean); ok {
		return t.Name, nil
	}

	// 2. Known variations.
	if target, ok := rules.Variations[clean]; ok {
		if t, ok := tables.GetFold(target); ok {
			return t.Name, nil
		}
	}

	// 3. Substring containment. Longer names first so a more specific name
	// wins over a shorter one it contains (AccountAddress over Account).
	if clean != "" {
		for _, name := range namesByLength(tables) {
			upper := strings.ToUpper(name)
			if strings.Contains(clean, upper) || strings.Contains(upper, clean) {
				return name, nil
			}
		}
	}

	// 4. Keyword fallback, in declaration order.
	for _, kw := range rules.Keywords {
		if !strings.Contains(clean, kw.Pattern) {
			continue
		}
		for _, candidate := range kw.Tables {
			if t, ok := tables.GetFold(candidate); ok {
				return t.Name, nil
			}
		}
	}

	// 5. No ambiguity possible with a single table.
	if names := tables.Names(); len(names) == 1 {
		return names[0], nil
	}

	return "", &UnknownTableError{Filename: filename, Available: tables.Names()}
}

// namesByLength returns the known table names sorted by descending length,
// alphabetical within the same length for deterministic resolution.
func namesByLength(tables *schema.Set) []string {
	names := tables.Names()
	sort.SliceStable(names, func(i, j int) bool {
		return len(names[i]) > len(names[j])
	})
	return names
}
