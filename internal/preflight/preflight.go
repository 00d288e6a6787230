package preflight

import (
	"context"

	"tonearm/internal/config"
	"tonearm/internal/services/ytdlp"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the checks a run depends on: the fetch tool, the
// transcoder, and the output directory.
func RunAll(ctx context.Context, cfg *config.Config, fetcher ytdlp.Client) []Result {
	if cfg == nil {
		return nil
	}
	results := []Result{
		CheckFetchTool(ctx, fetcher),
		CheckTranscoder(cfg.Tools.FFmpegBinary),
		CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir),
	}
	return results
}

// AllPassed reports whether every check succeeded.
func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
