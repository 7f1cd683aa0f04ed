// Package schema defines the core domain types for ofsaav: table and column
// definitions parsed from OFSAA declaration templates. Tables are built once
// at startup and read-only afterwards, so they are safe to share across
// concurrent validation sessions without locking.
package schema

import (
	"sort"
	"strings"
)

// DataType is the normalized column data type. The declaration templates use
// Oracle-flavored names; NUMBER/INTEGER/NUMERIC collapse to TypeNumber and
// VARCHAR/VARCHAR2/CHAR collapse to TypeString.
type DataType int

const (
	TypeString DataType = iota
	TypeNumber
	TypeDate
)

// String returns the canonical declaration name for the type.
func (d DataType) String() string {
	switch d {
	case TypeNumber:
		return "NUMBER"
	case TypeDate:
		return "DATE"
	default:
		return "VARCHAR2"
	}
}

// ParseDataType maps a declaration data-type name onto a DataType.
// Unrecognized names fall back to TypeString, matching the loader's
// treat-unknowns-as-text behavior.
func ParseDataType(s string) DataType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NUMBER", "INTEGER", "NUMERIC":
		return TypeNumber
	case "DATE":
		return TypeDate
	default:
		return TypeString
	}
}

// FormatKind tags a column with the name-driven format rule that applies to
// it. It is resolved once at schema-load time from the column name, so the
// validator never re-scans names on the hot path.
type FormatKind int

const (
	FormatNone FormatKind = iota
	FormatEmail
	FormatPhone
)

// FormatForName returns the format rule triggered by a column name.
// The match is a case-insensitive substring check, e.g. V_EMAIL_ADDRESS
// and CustEmail both get FormatEmail.
func FormatForName(name string) FormatKind {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "email"):
		return FormatEmail
	case strings.Contains(lower, "phone"):
		return FormatPhone
	default:
		return FormatNone
	}
}

// Requirement markers from the declaration templates.
const (
	RequirementMandatory = "M"
	RequirementOptional  = "O"
)

// Column describes a single column of a staging table.
type Column struct {
	Position    int        // physical column order, unique within a table
	Name        string     // case-sensitive identifier
	Type        DataType   // normalized data type
	Length      int        // max character count; 0 means unbounded
	Nullable    bool       // secondary mandatory signal
	Requirement string     // "M" or "O"; primary mandatory signal
	Description string     // free text from the template
	Format      FormatKind // name-driven format rule, resolved at load time
}

// Mandatory reports whether a value is required in this column. Either
// signal alone suffices: Requirement == "M" OR Nullable == false. Downstream
// load behavior depends on the OR, so both flags are honored as-is.
func (c Column) Mandatory() bool {
	return c.Requirement == RequirementMandatory || !c.Nullable
}

// Table is the immutable definition of one staging table.
type Table struct {
	Name        string   // unique lookup key
	Description string   //
	Columns     []Column // sorted by Position
	Delimiter   string   // single character, default "~"
	Encoding    string   // default "UTF-8"
	DateFormat  string   // informational; parsing always tries all formats
}

// SortColumns orders Columns by Position. Positions need not be contiguous;
// the sort order is the only contract.
func (t *Table) SortColumns() {
	sort.SliceStable(t.Columns, func(i, j int) bool {
		return t.Columns[i].Position < t.Columns[j].Position
	})
}

// ColumnNames returns the column names in position order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Defaults applied by the declaration loader when a template omits the
// file-format element.
const (
	DefaultDelimiter  = "~"
	DefaultEncoding   = "UTF-8"
	DefaultDateFormat = "YYYYMMDD"
)

// Set holds all known table definitions keyed by name.
type Set struct {
	tables map[string]*Table
}

// NewSet builds a Set from the given tables. Later tables with a duplicate
// name replace earlier ones, matching map semantics in the loader.
func NewSet(tables ...*Table) *Set {
	s := &Set{tables: make(map[string]*Table, len(tables))}
	for _, t := range tables {
		s.tables[t.Name] = t
	}
	return s
}

// Add inserts or replaces a table definition.
func (s *Set) Add(t *Table) {
	s.tables[t.Name] = t
}

// Get returns the table with the exact given name.
func (s *Set) Get(name string) (*Table, bool) {
	t, ok := s.tables[name]
	return t, ok
}

// GetFold returns the table whose name matches case-insensitively.
func (s *Set) GetFold(name string) (*Table, bool) {
	if t, ok := s.tables[name]; ok {
		return t, true
	}
	for n, t := range s.tables {
		if strings.EqualFold(n, name) {
			return t, true
		}
	}
	return nil, false
}

// Len returns the number of known tables.
func (s *Set) Len() int {
	return len(s.tables)
}

// Names returns all table names sorted alphabetically.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.tables))
	for n := range s.tables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
