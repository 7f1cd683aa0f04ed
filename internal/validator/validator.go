// Copyright 2026 The OfsaaValidator Authors
// SPDX-License-Identifier: MIT

// Package validator applies schema conformance rules to individual data rows.
// Each column runs up to four ordered checks (mandatory, data type, length,
// format) and every violation is reported with a fix recommendation. Row
// validation is a pure function of (table, row), so rows may be validated
// concurrently without coordination.
package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/GooferByte/OfsaaValidator/internal/schema"
)

// ErrorType classifies a validation failure.
type ErrorType string

const (
	ValueMissing    ErrorType = "VALUE_MISSING"
	InvalidDataType ErrorType = "INVALID_DATA_TYPE"
	LengthExceeded  ErrorType = "LENGTH_EXCEEDED"
	InvalidFormat   ErrorType = "INVALID_FORMAT"
)

// NullDisplay is how an absent cell is rendered in error output.
const NullDisplay = "NULL"

// Error is a single row-level validation failure. Errors never abort a run;
// they accumulate and route the offending row to the rejected partition.
type Error struct {
	Row      int       // 1-based row number within the parsed sequence
	Column   string    // column name
	Type     ErrorType //
	Message  string    // human text
	Actual   string    // offending cell, or NullDisplay
	Expected string    //
	Fix      string    // fix recommendation
}

// String renders the error the way rejection reasons are reported.
func (e Error) String() string {
	return fmt.Sprintf("%s: %s", e.Column, e.Message)
}

// dateFormats are tried in order; the first successful parse wins.
// The slashed layouts are ambiguous for days <= 12, so DD/MM/YYYY is
// preferred over MM/DD/YYYY, matching the source system's convention.
var dateFormats = []string{
	"20060102",   // YYYYMMDD
	"2006-01-02", // YYYY-MM-DD
	"02/01/2006", // DD/MM/YYYY
	"01/02/2006", // MM/DD/YYYY
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// phoneStrip removes the punctuation tolerated in phone numbers; whatever
// remains must be digits only.
var phoneStrip = strings.NewReplacer(" ", "", "\t", "", "-", "", "(", "", ")", "", "+", "")

// mandatoryFixes maps column-name keywords to advice for populating a
// missing mandatory value. Matched by substring against the lower-cased
// column name; first hit wins in the order listed.
var mandatoryFixes = []struct {
	keyword string
	advice  string
}{
	{"country", "Add 2-letter country code (e.g., AO for Angola, PT for Portugal)"},
	{"branch", "Provide valid branch code from your branch master data"},
	{"currency", "Add 3-letter currency code (e.g., AOA, USD, EUR)"},
	{"account", "Provide valid account number"},
	{"customer", "Provide valid customer ID"},
	{"date", "Add date in YYYYMMDD format (e.g., 20251015)"},
	{"status", "Provide valid status code (e.g., ACTIVE, CLOSED)"},
	{"type", "Provide valid type code"},
	{"address", "Provide valid address information"},
	{"seq", "Provide valid sequence ID"},
}

// ValidateRow checks one row of cells against the table definition and
// returns every violation found. Cells are assumed to be aligned 1:1 with
// the table's column order; the reader enforces that before validation.
//
// Check order per column, with short-circuit on a missing mandatory value:
//
//  1. mandatory: empty cell in a mandatory column emits VALUE_MISSING and
//     skips the remaining checks (an absent value cannot meaningfully fail
//     a type or format check). Empty optional cells are skipped silently.
//  2. data type
//  3. length
//  4. format (email/phone, resolved from the column name at load time)
//
// Checks 2-4 are independent: a cell can report both INVALID_DATA_TYPE and
// LENGTH_EXCEEDED. Columns are independent of each other.
func ValidateRow(tbl *schema.Table, row []string, rowNum int) []Error {
	var errs []Error

	for i, col := range tbl.Columns {
		var value string
		if i < len(row) {
			value = row[i]
		}

		if isEmpty(value) {
			if col.Mandatory() {
				errs = append(errs, missingError(col, value, rowNum))
			}
			continue
		}

		if e, ok := checkDataType(col, value, rowNum); ok {
			errs = append(errs, e)
		}
		if e, ok := checkLength(col, value, rowNum); ok {
			errs = append(errs, e)
		}
		if e, ok := checkFormat(col, value, rowNum); ok {
			errs = append(errs, e)
		}
	}

	return errs
}

// isEmpty reports whether a cell counts as absent: the null marker or
// whitespace only.
func isEmpty(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed == "" || strings.EqualFold(trimmed, NullDisplay)
}

// missingError builds the VALUE_MISSING error for a mandatory column,
// recording which signal made the column mandatory.
func missingError(col schema.Column, value string, rowNum int) Error {
	why := ""
	if col.Requirement == schema.RequirementMandatory {
		why = " (Requirement: M)"
	} else if !col.Nullable {
		why = " (Nullable: false)"
	}

	return Error{
		Row:      rowNum,
		Column:   col.Name,
		Type:     ValueMissing,
		Message:  fmt.Sprintf("%s [Value Missing]%s", col.Name, why),
		Actual:   displayValue(value),
		Expected: "Non-null value",
		Fix:      mandatoryFix(col.Name),
	}
}

func checkDataType(col schema.Column, value string, rowNum int) (Error, bool) {
	ok := true
	switch col.Type {
	case schema.TypeNumber:
		// Thousands separators are tolerated: "1,234.56" is a valid number.
		_, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
		ok = err == nil
	case schema.TypeDate:
		_, err := ParseDate(value)
		ok = err == nil
	case schema.TypeString:
		// Any text is a valid string.
	}
	if ok {
		return Error{}, false
	}

	return Error{
		Row:      rowNum,
		Column:   col.Name,
		Type:     InvalidDataType,
		Message:  fmt.Sprintf("Invalid %s format", col.Type),
		Actual:   value,
		Expected: fmt.Sprintf("Valid %s", col.Type),
		Fix:      dataTypeFix(col.Type, value),
	}, true
}

func checkLength(col schema.Column, value string, rowNum int) (Error, bool) {
	if col.Length <= 0 {
		return Error{}, false
	}
	runes := []rune(value)
	if len(runes) <= col.Length {
		return Error{}, false
	}

	return Error{
		Row:      rowNum,
		Column:   col.Name,
		Type:     LengthExceeded,
		Message:  fmt.Sprintf("Length exceeds maximum %d characters", col.Length),
		Actual:   value,
		Expected: fmt.Sprintf("Max %d characters", col.Length),
		Fix:      fmt.Sprintf("Truncate to %d characters: '%s...'", col.Length, string(runes[:col.Length])),
	}, true
}

func checkFormat(col schema.Column, value string, rowNum int) (Error, bool) {
	trimmed := strings.TrimSpace(value)

	switch col.Format {
	case schema.FormatEmail:
		if !emailPattern.MatchString(trimmed) {
			return Error{
				Row:      rowNum,
				Column:   col.Name,
				Type:     InvalidFormat,
				Message:  "Invalid email format",
				Actual:   value,
				Expected: "valid@email.com",
				Fix:      "Provide valid email address (e.g., user@example.com)",
			}, true
		}
	case schema.FormatPhone:
		if !isDigits(phoneStrip.Replace(trimmed)) {
			return Error{
				Row:      rowNum,
				Column:   col.Name,
				Type:     InvalidFormat,
				Message:  "Invalid phone format",
				Actual:   value,
				Expected: "Valid phone number",
				Fix:      "Remove non-numeric characters or provide valid phone number",
			}, true
		}
	}
	return Error{}, false
}

// ParseDate parses a date cell against the supported formats in order and
// returns the first successful parse.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %q", s)
}

// isDigits reports whether s is non-empty and contains only ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// mandatoryFix returns populate advice for a missing mandatory column,
// matched by keyword against the lower-cased column name.
func mandatoryFix(colName string) string {
	lower := strings.ToLower(colName)
	for _, f := range mandatoryFixes {
		if strings.Contains(lower, f.keyword) {
			return f.advice
		}
	}
	return fmt.Sprintf("Populate %s with valid value", colName)
}

// dataTypeFix returns conversion advice tailored to the declared type.
func dataTypeFix(dt schema.DataType, value string) string {
	switch dt {
	case schema.TypeNumber:
		return fmt.Sprintf("Remove non-numeric characters. Current value '%s' contains invalid characters", value)
	case schema.TypeDate:
		return fmt.Sprintf("Convert to YYYYMMDD format. Current value '%s' is not a valid date", value)
	default:
		return fmt.Sprintf("Ensure value is valid %s", dt)
	}
}

// displayValue renders a cell for error output, substituting NullDisplay
// for absent values.
func displayValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return NullDisplay
	}
	return value
}
