// Copyright 2026 The OfsaaValidator Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/GooferByte/OfsaaValidator/internal/config"
	"github.com/GooferByte/OfsaaValidator/internal/reader"
	"github.com/GooferByte/OfsaaValidator/internal/report"
	"github.com/GooferByte/OfsaaValidator/internal/resolve"
	"github.com/GooferByte/OfsaaValidator/internal/schema"
	"github.com/GooferByte/OfsaaValidator/internal/session"
	"github.com/GooferByte/OfsaaValidator/internal/templates"
)

// Validate-specific flag values.
var (
	validateTable     string
	validateTemplates string
	validateFormat    string
	validateOutput    string
	validateWorkers   int
	validateBatchSize int
	validateThreshold float64
)

// batchConcurrency caps how many files batch mode validates at once. Row
// validation inside each file already fans out across workers.
const batchConcurrency = 4

// dataExtensions are the staging-file extensions batch mode picks up.
var dataExtensions = map[string]bool{".dat": true, ".txt": true, ".csv": true}

// validateCmd validates one staging file, or every staging file in a
// directory, against the loaded table definitions.
var validateCmd = &cobra.Command{
	Use:   "validate <file-or-dir>",
	Short: "Validate staging files against their table definitions",
	Long: `Validate a delimited staging file against its OFSAA table definition.
The table is resolved from the file name unless --table is given. When the
argument is a directory, every staging file in it (.dat, .txt, .csv) is
validated.

Exit codes: 0 all files met the quality threshold; 1 invalid arguments or
structural failure; 2 at least one file scored below the threshold; 3 no
staging files found to validate.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateTable, "table", "t", "", "staging table name (default: resolved from the file name)")
	validateCmd.Flags().StringVar(&validateTemplates, "templates", "", "directory containing XML table definitions (default \"templates\")")
	validateCmd.Flags().StringVarP(&validateFormat, "format", "f", "", "report format (console, csv, html, json; default \"console\")")
	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", "", "output file, or directory for csv and batch mode (default: stdout)")
	validateCmd.Flags().IntVar(&validateWorkers, "workers", 0, "concurrent validation workers (0 = number of CPUs)")
	validateCmd.Flags().IntVarP(&validateBatchSize, "batch", "b", 0, fmt.Sprintf("rows per validation batch (0 = %d)", session.DefaultBatchSize))
	validateCmd.Flags().Float64Var(&validateThreshold, "threshold", 0, fmt.Sprintf("minimum quality score for a zero exit (default %g)", config.DefaultThreshold))
}

// fileOutcome is the result of validating one staging file.
type fileOutcome struct {
	path  string
	input report.Input
	err   error
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return exitError(ExitInvalidArgs, "ofsaav: path %q does not exist (check the path and try again)", path)
	}

	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	tables, err := templates.LoadDir(cfg.TemplatesDir)
	if err != nil {
		return exitError(ExitInvalidArgs, "ofsaav: %v", err)
	}
	slog.Info("templates loaded", "dir", cfg.TemplatesDir, "tables", tables.Len())

	renderer, _ := report.Get(cfg.OutputFormat) // already validated in loadRunConfig

	if info.IsDir() {
		return runBatch(cmd, path, tables, cfg, renderer)
	}

	outcome := validateFile(cmd, path, validateTable, tables, cfg)
	if outcome.err != nil {
		return outcome.err
	}
	if err := renderOutcome(cmd, outcome, renderer, cfg.OutputDir, false); err != nil {
		return err
	}

	if outcome.input.Result.Summary.QualityScore < cfg.Threshold {
		return exitError(ExitBelowThreshold,
			"ofsaav: quality score %.2f%% is below threshold %g%%",
			outcome.input.Result.Summary.QualityScore, cfg.Threshold)
	}
	return nil
}

// runBatch validates every staging file in dir. Files are validated
// concurrently and rendered in name order.
func runBatch(cmd *cobra.Command, dir string, tables *schema.Set, cfg *config.Config, renderer report.Renderer) error {
	files, err := collectDataFiles(dir)
	if err != nil {
		return exitError(ExitInvalidArgs, "ofsaav: %v", err)
	}
	if len(files) == 0 {
		return exitError(ExitNothingValidated, "ofsaav: no staging files (.dat, .txt, .csv) found in %q", dir)
	}
	slog.Info("batch validation", "dir", dir, "files", len(files))

	outcomes := make([]*fileOutcome, len(files))
	var g errgroup.Group
	g.SetLimit(batchConcurrency)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			outcomes[i] = validateFile(cmd, f, validateTable, tables, cfg)
			return nil
		})
	}
	_ = g.Wait() // goroutines report through outcomes

	validated := 0
	belowThreshold := 0
	structuralFailure := false
	for _, o := range outcomes {
		if o.err != nil {
			structuralFailure = true
			slog.Error("file validation failed", "file", o.path, "error", o.err)
			continue
		}
		if err := renderOutcome(cmd, o, renderer, cfg.OutputDir, true); err != nil {
			return err
		}
		validated++
		if o.input.Result.Summary.QualityScore < cfg.Threshold {
			belowThreshold++
		}
	}

	switch {
	case validated == 0:
		return exitError(ExitNothingValidated, "ofsaav: no files validated in %q", dir)
	case structuralFailure:
		return exitError(ExitInvalidArgs, "ofsaav: some files failed validation, see errors above")
	case belowThreshold > 0:
		return exitError(ExitBelowThreshold,
			"ofsaav: %d of %d file(s) scored below threshold %g%%", belowThreshold, validated, cfg.Threshold)
	default:
		return nil
	}
}

// validateFile resolves, reads, and validates a single staging file. The
// returned outcome carries either a report input or an error.
func validateFile(cmd *cobra.Command, path, tableFlag string, tables *schema.Set, cfg *config.Config) *fileOutcome {
	out := &fileOutcome{path: path}

	name := tableFlag
	if name == "" {
		resolved, err := resolve.Resolve(filepath.Base(path), tables)
		if err != nil {
			out.err = exitError(ExitInvalidArgs, "ofsaav: %v", err)
			return out
		}
		name = resolved
	}
	tbl, ok := tables.GetFold(name)
	if !ok {
		out.err = exitError(ExitInvalidArgs,
			"ofsaav: unknown table %q (available: %s)", name, strings.Join(tables.Names(), ", "))
		return out
	}
	slog.Info("table resolved", "file", filepath.Base(path), "table", tbl.Name)

	rr, err := reader.Read(path, tbl)
	if err != nil {
		out.err = exitError(ExitInvalidArgs, "ofsaav: %s: %v", path, err)
		return out
	}

	runner := &session.Runner{Workers: cfg.Workers, BatchSize: validateBatchSize}
	result, err := runner.Run(cmd.Context(), tbl, rr.Rows)
	if err != nil {
		out.err = exitError(ExitInvalidArgs, "ofsaav: validation interrupted (%v)", err)
		return out
	}

	out.input = report.Input{Table: tbl, Metadata: rr.Metadata, Rows: rr.Rows, Result: result}
	return out
}

// renderOutcome writes one file's report to the configured destination.
// Directory renderers require an output directory; in batch mode each file
// gets its own subdirectory or report file under outputDir.
func renderOutcome(cmd *cobra.Command, o *fileOutcome, renderer report.Renderer, outputDir string, batch bool) error {
	stem := strings.TrimSuffix(filepath.Base(o.path), filepath.Ext(o.path))

	if dr, ok := renderer.(report.DirectoryRenderer); ok {
		if outputDir == "" {
			return exitError(ExitInvalidArgs,
				"ofsaav: %s format requires --output (-o) to name an output directory", renderer.Name())
		}
		dir := outputDir
		if batch {
			dir = filepath.Join(outputDir, stem)
		}
		if err := dr.RenderDir(o.input, dir); err != nil {
			return exitError(ExitInvalidArgs, "ofsaav: %s: %v", o.path, err)
		}
		slog.Info("report written", "file", o.path, "dir", dir)
		return nil
	}

	w := cmd.OutOrStdout()
	if outputDir != "" {
		dest := outputDir
		if batch {
			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return exitError(ExitInvalidArgs, "ofsaav: cannot create output directory %q (%v)", outputDir, err)
			}
			dest = filepath.Join(outputDir, stem+"."+renderer.Name())
		}
		f, err := os.Create(dest) //nolint:gosec // caller-chosen output path
		if err != nil {
			return exitError(ExitInvalidArgs, "ofsaav: cannot create output file %q (%v)", dest, err)
		}
		defer f.Close() //nolint:errcheck // best-effort close on output file
		w = f
	}

	if err := renderer.Render(o.input, w); err != nil {
		return exitError(ExitInvalidArgs, "ofsaav: %s: %v", o.path, err)
	}
	return nil
}

// collectDataFiles lists the staging files directly under dir, sorted by name.
func collectDataFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if dataExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, a generic description
// of the exit code is used.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitBelowThreshold:
			msg = "ofsaav: quality score below threshold"
		case ExitNothingValidated:
			msg = "ofsaav: nothing validated"
		default:
			msg = "ofsaav: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}
