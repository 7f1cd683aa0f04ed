// Copyright 2026 The OfsaaValidator Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

func init() {
	Register(NewConsoleRenderer())
}

// Shared color printers for console output.
var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorBold   = color.New(color.Bold)
)

// maxRejectedSamples caps how many rejected rows the console summary lists.
const maxRejectedSamples = 10

// ConsoleRenderer writes a colored human-readable validation summary.
type ConsoleRenderer struct{}

// Compile-time interface check.
var _ Renderer = (*ConsoleRenderer)(nil)

// NewConsoleRenderer returns a new ConsoleRenderer.
func NewConsoleRenderer() *ConsoleRenderer {
	return &ConsoleRenderer{}
}

// Name returns the format name.
func (c *ConsoleRenderer) Name() string {
	return "console"
}

// Render writes the validation summary, quality verdict, and a sample of
// rejected rows to w.
func (c *ConsoleRenderer) Render(in Input, w io.Writer) error {
	s := in.Result.Summary

	rule := "================================================================================"
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, colorBold.Sprint("VALIDATION SUMMARY"))
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Table:             %s\n", s.Table)
	if in.Metadata.Path != "" {
		fmt.Fprintf(w, "File:              %s\n", in.Metadata.Path)
	}
	fmt.Fprintf(w, "Total Records:     %d\n", s.TotalRecords)
	fmt.Fprintf(w, "Valid Records:     %d (%.2f%%)\n", s.ValidRecords, s.QualityScore)
	fmt.Fprintf(w, "Rejected Records:  %d\n", s.RejectedRecords)
	fmt.Fprintf(w, "Total Errors:      %d\n", s.TotalErrors)
	fmt.Fprintf(w, "Processing Time:   %s\n", s.ProcessingTime)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Data Quality: %s\n", QualityVerdict(s.QualityScore))

	if len(in.Result.Partition.Rejected) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, colorBold.Sprint("REJECTED RECORDS (sample)"))
		for i, rr := range in.Result.Partition.Rejected {
			if i >= maxRejectedSamples {
				fmt.Fprintf(w, "  ... and %d more\n", len(in.Result.Partition.Rejected)-maxRejectedSamples)
				break
			}
			fmt.Fprintf(w, "  row %d (%d error(s)): %s\n", rr.Index+1, rr.ErrorCount, rr.Reasons)
		}
	}

	return nil
}

// QualityVerdict maps a quality score onto the verdict bands used for
// operator guidance.
func QualityVerdict(score float64) string {
	switch {
	case score >= 95:
		return colorGreen.Sprint("EXCELLENT - Ready for OFSAA load")
	case score >= 85:
		return colorYellow.Sprint("GOOD - Review rejected records")
	case score >= 70:
		return colorYellow.Sprint("FAIR - Significant issues to fix")
	default:
		return colorRed.Sprint("POOR - Major issues detected")
	}
}
