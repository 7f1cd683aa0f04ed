// Package partition splits validated rows into valid and rejected record
// sets. Splitting is a pure function of (rows, errors): re-running it with
// the same inputs always yields the same partition.
package partition

import (
	"strings"

	"github.com/GooferByte/OfsaaValidator/internal/validator"
)

// ReasonSeparator joins the individual rejection reasons of one row.
const ReasonSeparator = " | "

// RejectedRow is a row routed to the rejected set, annotated with why.
type RejectedRow struct {
	Index      int      // 0-based index within the input rows
	Cells      []string //
	Reasons    string   // "{column}: {message}" joined with ReasonSeparator
	ErrorCount int      //
}

// Partition is the outcome of splitting rows by their validation errors.
// Every input row lands in exactly one of Valid or Rejected.
type Partition struct {
	Valid    [][]string
	Rejected []RejectedRow
}

// Total returns the number of partitioned rows.
func (p Partition) Total() int {
	return len(p.Valid) + len(p.Rejected)
}

// Split partitions rows by the row-level errors found during validation.
// A row is rejected iff it has at least one error; its reasons preserve the
// error order produced by the validator.
func Split(rows [][]string, errs []validator.Error) Partition {
	byRow := make(map[int][]validator.Error)
	for _, e := range errs {
		idx := e.Row - 1
		if idx < 0 || idx >= len(rows) {
			continue
		}
		byRow[idx] = append(byRow[idx], e)
	}

	p := Partition{}
	for i, row := range rows {
		rowErrs, rejected := byRow[i]
		if !rejected {
			p.Valid = append(p.Valid, row)
			continue
		}

		reasons := make([]string, len(rowErrs))
		for j, e := range rowErrs {
			reasons[j] = e.String()
		}
		p.Rejected = append(p.Rejected, RejectedRow{
			Index:      i,
			Cells:      row,
			Reasons:    strings.Join(reasons, ReasonSeparator),
			ErrorCount: len(rowErrs),
		})
	}

	return p
}
