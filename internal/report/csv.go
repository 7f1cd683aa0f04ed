package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

func init() {
	Register(NewCSVRenderer())
}

// CSVRenderer writes record extracts the way the downstream load expects
// them: valid rows ready for ingestion, rejected rows annotated with their
// rejection reasons, and the flat error list.
type CSVRenderer struct{}

// Compile-time interface checks.
var (
	_ Renderer          = (*CSVRenderer)(nil)
	_ DirectoryRenderer = (*CSVRenderer)(nil)
)

// NewCSVRenderer returns a new CSVRenderer.
func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

// Name returns the format name.
func (c *CSVRenderer) Name() string {
	return "csv"
}

// Render writes the error list as CSV to w.
func (c *CSVRenderer) Render(in Input, w io.Writer) error {
	return c.writeErrors(in, w)
}

// RenderDir writes valid_records.csv, rejected_records.csv, and errors.csv
// into dir, creating it if needed. Extracts with no rows are omitted.
func (c *CSVRenderer) RenderDir(in Input, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if len(in.Result.Partition.Valid) > 0 {
		if err := c.writeFile(filepath.Join(dir, "valid_records.csv"), func(w io.Writer) error {
			return c.writeValid(in, w)
		}); err != nil {
			return err
		}
	}

	if len(in.Result.Partition.Rejected) > 0 {
		if err := c.writeFile(filepath.Join(dir, "rejected_records.csv"), func(w io.Writer) error {
			return c.writeRejected(in, w)
		}); err != nil {
			return err
		}
	}

	if len(in.Result.Errors) > 0 {
		if err := c.writeFile(filepath.Join(dir, "errors.csv"), func(w io.Writer) error {
			return c.writeErrors(in, w)
		}); err != nil {
			return err
		}
	}

	return nil
}

func (c *CSVRenderer) writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path) //nolint:gosec // caller-chosen output dir
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if err := write(f); err != nil {
		f.Close() //nolint:errcheck,gosec // already failing
		return err
	}
	return f.Close()
}

func (c *CSVRenderer) writeValid(in Input, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(in.Table.ColumnNames()); err != nil {
		return err
	}
	for _, row := range in.Result.Partition.Valid {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (c *CSVRenderer) writeRejected(in Input, w io.Writer) error {
	cw := csv.NewWriter(w)
	header := append(in.Table.ColumnNames(), "rejection_reasons", "error_count")
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, rr := range in.Result.Partition.Rejected {
		record := make([]string, 0, len(rr.Cells)+2)
		record = append(record, rr.Cells...)
		record = append(record, rr.Reasons, strconv.Itoa(rr.ErrorCount))
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (c *CSVRenderer) writeErrors(in Input, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"row", "column", "error_type", "message", "actual_value", "expected_value", "fix_recommendation"}); err != nil {
		return err
	}
	for _, e := range in.Result.Errors {
		record := []string{
			strconv.Itoa(e.Row), e.Column, string(e.Type),
			e.Message, e.Actual, e.Expected, e.Fix,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
