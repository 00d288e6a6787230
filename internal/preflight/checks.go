package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"tonearm/internal/config"
	"tonearm/internal/deps"
	"tonearm/internal/services/ytdlp"
)

// CheckFetchTool verifies that at least one fetch tool invocation form
// responds. A direct binary miss is fine when the Python module fallback works.
func CheckFetchTool(ctx context.Context, fetcher ytdlp.Client) Result {
	const name = "Fetch tool"
	if fetcher == nil {
		return Result{Name: name, Detail: "fetch client not configured"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	version, err := fetcher.Version(checkCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Result{Name: name, Detail: "version check timed out"}
		}
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: "version " + strings.TrimSpace(version)}
}

// CheckTranscoder verifies the transcoder binary is on PATH.
func CheckTranscoder(binary string) Result {
	const name = "Transcoder"
	statuses := deps.CheckBinaries([]deps.Requirement{
		{Name: name, Command: binary, Description: "Required for audio transcoding"},
	})
	status := statuses[0]
	if !status.Available {
		return Result{Name: name, Detail: status.Detail}
	}
	return Result{Name: name, Passed: true, Detail: status.Command + " found"}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSystemDeps evaluates the external tool set for the deps command.
// Python is optional because it only backs the module-form fallback.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "yt-dlp",
			Command:     cfg.Tools.FetchBinary,
			Description: "Required for fetching media and playlist metadata",
		},
		{
			Name:        "Python",
			Command:     cfg.Tools.PythonBinary,
			Description: "Fallback runner for the fetch tool module form",
			Optional:    true,
		},
		{
			Name:        "FFmpeg",
			Command:     cfg.Tools.FFmpegBinary,
			Description: "Required for audio transcoding",
		},
	}
	return deps.CheckBinaries(requirements)
}
