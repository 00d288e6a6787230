package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"tonearm/internal/batch"
	"tonearm/internal/config"
	"tonearm/internal/convert"
	"tonearm/internal/history"
	"tonearm/internal/library"
	"tonearm/internal/logging"
	"tonearm/internal/media"
	"tonearm/internal/playlist"
	"tonearm/internal/preflight"
	"tonearm/internal/reconcile"
	"tonearm/internal/report"
	"tonearm/internal/services/ffmpeg"
	"tonearm/internal/services/ytdlp"
)

const lockFileName = ".tonearm.lock"

func runConvert(cmd *cobra.Command, cmdCtx *commandContext, source string) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	runID := history.NewRunID()
	logger = logger.With(logging.String(logging.FieldRunID, runID))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := ytdlp.NewCLI(
		ytdlp.WithForms(cfg.FetchForms()...),
		ytdlp.WithLogger(logger),
	)
	transcoder := ffmpeg.NewCLI(
		ffmpeg.WithBinary(cfg.Tools.FFmpegBinary),
		ffmpeg.WithAudio(cfg.Audio.Codec, cfg.Audio.Bitrate),
	)

	checks := preflight.RunAll(ctx, cfg, fetcher)
	for _, check := range checks {
		if !check.Passed {
			return fmt.Errorf("preflight: %s: %s", check.Name, check.Detail)
		}
	}

	items, err := resolveItems(ctx, fetcher, source)
	if err != nil {
		return err
	}
	logger.Info("resolved source",
		logging.String("source", source),
		logging.Int("items", len(items)))

	// One writer per output directory. Concurrent runs against the same
	// directory would race on the scan and on intermediate files.
	runLock := flock.New(filepath.Join(cfg.Paths.OutputDir, lockFileName))
	locked, err := runLock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another run is already writing to %s", cfg.Paths.OutputDir)
	}
	defer func() { _ = runLock.Unlock() }()

	inventory, err := library.Scan(cfg.Paths.OutputDir, cfg.TargetExtension())
	if err != nil {
		return fmt.Errorf("scan output directory: %w", err)
	}
	result := reconcile.Partition(items, inventory)
	logger.Info("reconciled against output directory",
		logging.Int("present", len(result.Present)),
		logging.Int("missing", len(result.Missing)),
		logging.Int("invalid", len(result.Failed)))

	orchestrator := convert.New(fetcher, transcoder, cfg.Paths.OutputDir,
		convert.WithLogger(logger),
		convert.WithTargetExtension(cfg.TargetExtension()),
	)
	runner := batch.New(orchestrator, cfg.Paths.OutputDir, cfg.TargetExtension(),
		batch.WithLogger(logger),
		batch.WithConcurrency(cfg.Batch.Concurrency),
	)

	started := time.Now()
	rep := runner.Run(ctx, result)
	finished := time.Now()

	if cfg.History.Enabled {
		if err := recordHistory(ctx, cfg, runID, source, started, finished, rep); err != nil {
			logger.Warn("could not record run history", logging.Error(err))
		}
	}

	renderSummary(cmd, rep)

	if err := ctx.Err(); err != nil {
		return err
	}
	if counts := rep.Counts(); counts.Failed > 0 {
		return fmt.Errorf("%d of %d items failed", counts.Failed, rep.Total())
	}
	return nil
}

// resolveItems turns the source argument into the ordered item list. A local
// JSON file and a remote playlist produce many items; a single video URL
// produces one with the title resolved later.
func resolveItems(ctx context.Context, fetcher ytdlp.Client, source string) ([]media.Item, error) {
	switch {
	case playlist.IsFile(source):
		items, err := playlist.LoadFile(source)
		if err != nil {
			return nil, fmt.Errorf("load playlist file: %w", err)
		}
		return items, nil
	case playlist.IsPlaylistURL(source):
		items, err := fetcher.ListFlat(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("list playlist: %w", err)
		}
		return items, nil
	case playlist.IsVideoURL(source):
		return []media.Item{media.NewItem("", source, "")}, nil
	default:
		return nil, fmt.Errorf("unrecognized source %q: expected a video URL, a playlist URL, or a playlist JSON file", source)
	}
}

func recordHistory(ctx context.Context, cfg *config.Config, runID, source string, started, finished time.Time, rep report.Report) error {
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	counts := rep.Counts()
	run := history.Run{
		ID:         runID,
		Source:     source,
		OutputDir:  cfg.Paths.OutputDir,
		StartedAt:  started,
		FinishedAt: finished,
		Total:      rep.Total(),
		Succeeded:  counts.Succeeded,
		Failed:     counts.Failed,
		Skipped:    counts.Skipped,
	}

	records := make([]history.ItemRecord, 0, len(rep.Entries))
	for _, entry := range rep.Entries {
		records = append(records, history.ItemRecord{
			Position:    entry.Position,
			Title:       entry.Outcome.Title,
			Class:       string(entry.Outcome.Class),
			Path:        entry.Outcome.Path,
			FailureKind: string(entry.Outcome.Kind),
			Detail:      entry.Outcome.Detail,
		})
	}
	return store.RecordRun(ctx, run, records)
}

func renderSummary(cmd *cobra.Command, rep report.Report) {
	out := cmd.OutOrStdout()

	rows := make([][]string, 0, rep.Total())
	for _, entry := range rep.Entries {
		detail := entry.Outcome.Path
		if entry.Outcome.Class == convert.ClassFailure {
			detail = string(entry.Outcome.Kind)
			if entry.Outcome.Detail != "" {
				detail += ": " + entry.Outcome.Detail
			}
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", entry.Position+1),
			entry.Outcome.Title,
			string(entry.Outcome.Class),
			detail,
		})
	}

	fmt.Fprintln(out, renderTable(
		[]string{"#", "Title", "Result", "Detail"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
	))

	counts := rep.Counts()
	fmt.Fprintf(out, "%d converted, %d skipped, %d failed (%d total)\n",
		counts.Succeeded, counts.Skipped, counts.Failed, rep.Total())
}
