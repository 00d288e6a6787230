// Package convert drives one fetch plus one conditional transcode per media
// item and resolves which file on disk is the authoritative output.
package convert

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"tonearm/internal/library"
	"tonearm/internal/locate"
	"tonearm/internal/logging"
	"tonearm/internal/media"
	"tonearm/internal/services/ffmpeg"
	"tonearm/internal/services/ytdlp"
	"tonearm/internal/textutil"
)

// Option configures the orchestrator.
type Option func(*Orchestrator)

// WithLogger attaches a logger for the progress narrative.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logging.WithComponent(logger, "convert")
		}
	}
}

// WithTargetExtension overrides the audio output extension.
func WithTargetExtension(ext string) Option {
	return func(o *Orchestrator) {
		if ext != "" {
			o.targetExt = ext
		}
	}
}

// Orchestrator converts one item at a time. It holds no per-item state;
// everything flows through Convert.
type Orchestrator struct {
	fetcher    ytdlp.Client
	transcoder ffmpeg.Client
	outputDir  string
	targetExt  string
	logger     *slog.Logger
}

// New constructs an orchestrator writing into outputDir.
func New(fetcher ytdlp.Client, transcoder ffmpeg.Client, outputDir string, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		fetcher:    fetcher,
		transcoder: transcoder,
		outputDir:  outputDir,
		targetExt:  ".mp3",
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Convert runs the per-item state machine:
//
//	pending → fetched → (already target format | transcoding) → done
//	pending → fetch failed
//	transcoding → transcode failed
//
// Every terminal failure becomes a Failure outcome; nothing here aborts a
// batch and nothing retries beyond the fetch tool's invocation forms.
func (o *Orchestrator) Convert(ctx context.Context, item media.Item) Outcome {
	title := strings.TrimSpace(item.Title)
	if !item.HasLocator() {
		return Failure(displayTitle(title, item), FailureInput, "item has no source locator")
	}

	// Resolve the target stem up front when a title is available, so the
	// pre-check below can short-circuit without spawning anything. A failed
	// lookup is non-fatal; naming then falls to the tool's own template and
	// the title is recovered from the located file afterwards.
	stem := ""
	if title != "" {
		stem = textutil.SanitizeTitle(title)
	} else if looked, err := o.fetcher.Title(ctx, item.SourceLocator); err == nil {
		title = looked
		stem = textutil.SanitizeTitle(looked)
	} else {
		o.logger.Debug("title lookup failed; deferring naming to the fetch tool",
			logging.String(logging.FieldLocator, item.SourceLocator),
			logging.Error(err))
	}

	if stem != "" {
		if existing := library.PathFor(o.outputDir, stem, o.targetExt); fileExists(existing) {
			o.logger.Info("already exists, skipping",
				logging.String(logging.FieldTitle, title),
				logging.String("path", existing))
			return Skipped(title, existing)
		}
	}

	template := filepath.Join(o.outputDir, "%(title)s.%(ext)s")
	if stem != "" {
		template = filepath.Join(o.outputDir, stem+".%(ext)s")
	}

	o.logger.Info("fetching",
		logging.String(logging.FieldState, string(StatePending)),
		logging.String(logging.FieldTitle, displayTitle(title, item)),
		logging.String(logging.FieldLocator, item.SourceLocator))

	toolOutput, err := o.fetcher.Download(ctx, item.SourceLocator, template)
	if err != nil {
		o.logger.Warn("fetch failed",
			logging.String(logging.FieldState, string(StateFetchFailed)),
			logging.Error(err))
		return Failure(displayTitle(title, item), FailureFetch, err.Error())
	}

	located, strategy, ok := locate.Locate(locate.Probe{
		ToolOutput: toolOutput,
		Dir:        o.outputDir,
		TargetExt:  o.targetExt,
	})
	if !ok {
		detail := "fetch reported success but no output file was found; inspect " + o.outputDir + " manually"
		o.logger.Warn("could not locate produced file",
			logging.String(logging.FieldState, string(StateFetchFailed)))
		return Failure(displayTitle(title, item), FailureLocate, detail)
	}
	o.logger.Info("located produced file",
		logging.String(logging.FieldState, string(StateFetched)),
		logging.String("path", located),
		logging.String("strategy", strategy))

	if title == "" {
		title = titleFromPath(located)
	}

	if strings.EqualFold(filepath.Ext(located), o.targetExt) {
		o.logger.Info("already in target format",
			logging.String(logging.FieldState, string(StateAlreadyTarget)),
			logging.String("path", located))
		return Success(title, located)
	}

	target := library.PathFor(o.outputDir, stem, o.targetExt)
	if stem == "" {
		target = strings.TrimSuffix(located, filepath.Ext(located)) + o.targetExt
	}

	o.logger.Info("transcoding",
		logging.String(logging.FieldState, string(StateTranscoding)),
		logging.String("input", located),
		logging.String("output", target))

	if err := o.transcoder.Transcode(ctx, located, target); err != nil {
		// The intermediate is deliberately kept so the user can retry or
		// convert it manually.
		o.logger.Warn("transcode failed, intermediate file preserved",
			logging.String(logging.FieldState, string(StateTranscodeFailed)),
			logging.String("intermediate", located),
			logging.Error(err))
		return Failure(title, FailureTranscode, err.Error())
	}

	if err := os.Remove(located); err != nil {
		o.logger.Warn("could not remove intermediate file",
			logging.String("intermediate", located),
			logging.Error(err))
	}

	o.logger.Info("done",
		logging.String(logging.FieldState, string(StateDone)),
		logging.String(logging.FieldTitle, title),
		logging.String("path", target))
	return Success(title, target)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func displayTitle(title string, item media.Item) string {
	if title != "" {
		return title
	}
	return item.SourceLocator
}
