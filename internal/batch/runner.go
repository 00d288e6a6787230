// Package batch feeds the reconciler's missing set through the converter
// and assembles the run report. Execution is strictly sequential by
// default: the source service rate-limits bursts, so the concurrency
// ceiling stays at 1 unless explicitly raised, and never fans out beyond
// the configured limit.
package batch

import (
	"context"
	"log/slog"
	"sync"

	"tonearm/internal/convert"
	"tonearm/internal/library"
	"tonearm/internal/logging"
	"tonearm/internal/media"
	"tonearm/internal/reconcile"
	"tonearm/internal/report"
	"tonearm/internal/textutil"
)

// Converter is the per-item operation the runner drives. Satisfied by
// *convert.Orchestrator.
type Converter interface {
	Convert(ctx context.Context, item media.Item) convert.Outcome
}

// Option configures the runner.
type Option func(*Runner)

// WithLogger attaches a logger for the per-item progress narrative.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logging.WithComponent(logger, "batch")
		}
	}
}

// WithConcurrency sets the fan-out ceiling. Values below 1 are coerced to
// the sequential default.
func WithConcurrency(limit int) Option {
	return func(r *Runner) {
		if limit > 1 {
			r.concurrency = limit
		}
	}
}

// Runner executes a reconciled batch.
type Runner struct {
	converter   Converter
	outputDir   string
	targetExt   string
	concurrency int
	logger      *slog.Logger
}

// New constructs a runner. outputDir and targetExt are needed to report the
// existing path for pre-classified skipped items.
func New(converter Converter, outputDir, targetExt string, opts ...Option) *Runner {
	r := &Runner{
		converter:   converter,
		outputDir:   outputDir,
		targetExt:   targetExt,
		concurrency: 1,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run converts every missing item and merges the present and failed
// partitions back in, so the report covers the whole original input set in
// input order.
func (r *Runner) Run(ctx context.Context, res reconcile.Result) report.Report {
	entries := make([]report.Entry, res.Total())

	for _, entry := range res.Present {
		stem := textutil.SanitizeTitle(entry.Item.Title)
		entries[entry.Position] = report.Entry{
			Position: entry.Position,
			Outcome:  convert.Skipped(entry.Item.Title, library.PathFor(r.outputDir, stem, r.targetExt)),
		}
	}
	for _, entry := range res.Failed {
		entries[entry.Position] = report.Entry{
			Position: entry.Position,
			Outcome:  convert.Failure(entry.Item.Title, convert.FailureInput, "item has no source locator"),
		}
	}

	r.convertMissing(ctx, res.Missing, entries)

	return report.Report{Entries: entries}
}

func (r *Runner) convertMissing(ctx context.Context, missing []reconcile.Entry, entries []report.Entry) {
	total := len(missing)
	if total == 0 {
		return
	}

	if r.concurrency <= 1 {
		for i, entry := range missing {
			r.logProgress(i+1, total, entry.Item)
			entries[entry.Position] = report.Entry{
				Position: entry.Position,
				Outcome:  r.converter.Convert(ctx, entry.Item),
			}
		}
		return
	}

	// Bounded fan-out. Each goroutine writes only its own slot.
	sem := make(chan struct{}, r.concurrency)
	var wg sync.WaitGroup
	for i, entry := range missing {
		wg.Add(1)
		go func(i int, entry reconcile.Entry) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			r.logProgress(i+1, total, entry.Item)
			entries[entry.Position] = report.Entry{
				Position: entry.Position,
				Outcome:  r.converter.Convert(ctx, entry.Item),
			}
		}(i, entry)
	}
	wg.Wait()
}

func (r *Runner) logProgress(n, total int, item media.Item) {
	r.logger.Info("processing item",
		logging.Int("n", n),
		logging.Int("total", total),
		logging.String(logging.FieldTitle, item.Title))
}
