// Copyright 2026 The OfsaaValidator Authors
// SPDX-License-Identifier: MIT

// Package session drives the row validator over every row of a parsed
// staging file and aggregates the outcome. A run always scans the whole
// file: the point is a complete rejection report in one pass, so row-level
// errors never stop it. Row validation is pure, so rows are fanned out to
// worker goroutines in contiguous batches and the error list is merged back
// in row order, keeping results deterministic regardless of scheduling.
package session

import (
	"context"
	"log/slog"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/GooferByte/OfsaaValidator/internal/partition"
	"github.com/GooferByte/OfsaaValidator/internal/schema"
	"github.com/GooferByte/OfsaaValidator/internal/validator"
)

// DefaultBatchSize is the number of rows handed to a worker at a time.
const DefaultBatchSize = 500

// Progress observes validation progress. It may be called from multiple
// worker goroutines; calls are serialized by the runner.
type Progress func(processed, total int)

// Summary are the aggregate counts of one validation run. It is computed
// once, from the final partition, never updated incrementally.
type Summary struct {
	RunID           string        `json:"run_id"`
	Table           string        `json:"table"`
	TotalRecords    int           `json:"total_records"`
	ValidRecords    int           `json:"valid_records"`
	RejectedRecords int           `json:"rejected_records"`
	TotalErrors     int           `json:"total_errors"`
	QualityScore    float64       `json:"data_quality_score"`
	ProcessingTime  time.Duration `json:"processing_time"`
}

// Result is the full outcome of a run: the classified errors in row order,
// the valid/rejected partition, and the summary.
type Result struct {
	Summary   Summary
	Errors    []validator.Error
	Partition partition.Partition
}

// Runner validates staging files against their table definition.
// The zero value is usable and picks sensible defaults.
type Runner struct {
	// Workers caps concurrent validation goroutines. <= 0 means GOMAXPROCS.
	Workers int

	// BatchSize is rows per worker batch. <= 0 means DefaultBatchSize.
	BatchSize int

	// Progress, if set, is invoked after each completed batch.
	Progress Progress
}

// Run validates every row against tbl. Rows are numbered from 1; the
// returned error list is ordered by row, then by column-encounter order
// within a row.
//
// A cancelled ctx halts further batches. The rows validated before the halt
// are still partitioned and summarized; the partial Result is returned
// together with the context error, never an inconsistent half-updated one.
func (r *Runner) Run(ctx context.Context, tbl *schema.Table, rows [][]string) (*Result, error) {
	start := time.Now()
	total := len(rows)

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	batchSize := r.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	slog.Debug("validation started", "table", tbl.Name, "records", total, "workers", workers)

	type batch struct{ start, end int }
	var batches []batch
	for i := 0; i < total; i += batchSize {
		end := min(i+batchSize, total)
		batches = append(batches, batch{start: i, end: end})
	}

	errsByBatch := make([][]validator.Error, len(batches))
	completed := make([]bool, len(batches))

	var mu sync.Mutex
	processed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, b := range batches {
		i, b := i, b
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			var errs []validator.Error
			for j := b.start; j < b.end; j++ {
				errs = append(errs, validator.ValidateRow(tbl, rows[j], j+1)...)
			}
			errsByBatch[i] = errs
			completed[i] = true

			mu.Lock()
			processed += b.end - b.start
			if r.Progress != nil {
				r.Progress(processed, total)
			}
			mu.Unlock()
			return nil
		})
	}
	runErr := g.Wait()

	// On cancellation only the contiguous prefix of completed batches is
	// reported, so row numbering in the partial result stays gapless.
	validated := total
	if runErr != nil {
		prefix := 0
		for prefix < len(batches) && completed[prefix] {
			prefix++
		}
		if prefix < len(batches) {
			validated = batches[prefix].start
		}
		slog.Warn("validation interrupted", "table", tbl.Name, "validated", validated, "total", total)
	}

	var allErrs []validator.Error
	for i, b := range batches {
		if b.end > validated {
			break
		}
		allErrs = append(allErrs, errsByBatch[i]...)
	}

	part := partition.Split(rows[:validated], allErrs)
	res := &Result{
		Summary:   summarize(tbl.Name, part, len(allErrs), time.Since(start)),
		Errors:    allErrs,
		Partition: part,
	}

	slog.Debug("validation complete", "table", tbl.Name,
		"valid", res.Summary.ValidRecords, "rejected", res.Summary.RejectedRecords,
		"errors", res.Summary.TotalErrors, "duration", res.Summary.ProcessingTime)

	return res, runErr
}

// summarize computes the run summary from the final partition.
func summarize(table string, part partition.Partition, totalErrors int, elapsed time.Duration) Summary {
	total := part.Total()
	valid := len(part.Valid)

	score := 0.0
	if total > 0 {
		score = math.Round(float64(valid)/float64(total)*100*100) / 100
	}

	return Summary{
		RunID:           uuid.NewString(),
		Table:           table,
		TotalRecords:    total,
		ValidRecords:    valid,
		RejectedRecords: len(part.Rejected),
		TotalErrors:     totalErrors,
		QualityScore:    score,
		ProcessingTime:  elapsed,
	}
}
