// Package locate identifies the file a fetch actually produced. The fetch
// tool's output name is not reliably predictable (title-derived characters,
// container choice), so a fixed-priority list of independent strategies is
// tried until one yields a file that exists on disk.
package locate

import (
	"os"
	"path/filepath"
	"strings"
)

// mediaExtensions are the container/audio formats the fetch tool is known
// to emit.
var mediaExtensions = map[string]struct{}{
	".mp4":  {},
	".webm": {},
	".m4a":  {},
	".mp3":  {},
	".opus": {},
	".aac":  {},
	".flv":  {},
	".mkv":  {},
}

// Probe carries everything a strategy may inspect.
type Probe struct {
	// ToolOutput is the fetch tool's combined stdout/stderr.
	ToolOutput string
	// Dir is the directory the fetch was asked to write into.
	Dir string
	// TargetExt is the audio output extension (with leading dot).
	TargetExt string
}

// Strategy is one way of finding the produced file. Find returns the path
// and true only when the file exists.
type Strategy struct {
	Name string
	Find func(Probe) (string, bool)
}

// Strategies returns the locator chain in priority order.
func Strategies() []Strategy {
	return []Strategy{
		{Name: "destination-announcement", Find: findDestinationAnnouncement},
		{Name: "deleted-original", Find: findDeletedOriginal},
		{Name: "newest-media-file", Find: findNewestMediaFile},
		{Name: "path-like-line", Find: findPathLikeLine},
	}
}

// Locate runs the strategy chain and returns the first existing path along
// with the name of the strategy that found it.
func Locate(probe Probe) (string, string, bool) {
	for _, strategy := range Strategies() {
		if path, ok := strategy.Find(probe); ok {
			return path, strategy.Name, true
		}
	}
	return "", "", false
}

// findDestinationAnnouncement parses the tool's own "Destination: <path>"
// lines, e.g. "[download] Destination: music/Song One.webm".
func findDestinationAnnouncement(probe Probe) (string, bool) {
	const marker = "Destination: "
	for _, line := range strings.Split(probe.ToolOutput, "\n") {
		idx := strings.Index(line, marker)
		if idx < 0 {
			continue
		}
		candidate := strings.TrimSpace(line[idx+len(marker):])
		if path, ok := confirm(candidate, probe.Dir); ok {
			return path, true
		}
	}
	return "", false
}

// findDeletedOriginal recovers the path from a "Deleting original file
// <path> (pass -k to keep)" announcement. When the tool post-processes, the
// announced survivor of that cleanup is usually the file we want next.
func findDeletedOriginal(probe Probe) (string, bool) {
	const marker = "Deleting original file "
	for _, line := range strings.Split(probe.ToolOutput, "\n") {
		idx := strings.Index(line, marker)
		if idx < 0 {
			continue
		}
		candidate := line[idx+len(marker):]
		if cut := strings.Index(candidate, " (pass"); cut >= 0 {
			candidate = candidate[:cut]
		}
		if path, ok := confirm(strings.TrimSpace(candidate), probe.Dir); ok {
			return path, true
		}
	}
	return "", false
}

// findNewestMediaFile scans the target directory for known media extensions
// and takes the most recently modified match.
func findNewestMediaFile(probe Probe) (string, bool) {
	entries, err := os.ReadDir(probe.Dir)
	if err != nil {
		return "", false
	}

	var newest string
	var newestMod int64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := mediaExtensions[ext]; !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); newest == "" || mod > newestMod {
			newest = filepath.Join(probe.Dir, entry.Name())
			newestMod = mod
		}
	}
	if newest == "" {
		return "", false
	}
	return newest, true
}

// findPathLikeLine accepts output lines that look like a filesystem path
// ending in the target extension, confirmed against the filesystem.
func findPathLikeLine(probe Probe) (string, bool) {
	if probe.TargetExt == "" {
		return "", false
	}
	for _, line := range strings.Split(probe.ToolOutput, "\n") {
		candidate := strings.TrimSpace(line)
		if candidate == "" {
			continue
		}
		if !strings.EqualFold(filepath.Ext(candidate), probe.TargetExt) {
			continue
		}
		if path, ok := confirm(candidate, probe.Dir); ok {
			return path, true
		}
	}
	return "", false
}

// confirm stats a candidate, retrying relative to the target directory for
// paths the tool printed relative to its own working directory.
func confirm(candidate, dir string) (string, bool) {
	if candidate == "" {
		return "", false
	}
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate, true
	}
	if !filepath.IsAbs(candidate) && dir != "" {
		joined := filepath.Join(dir, filepath.Base(candidate))
		if info, err := os.Stat(joined); err == nil && !info.IsDir() {
			return joined, true
		}
	}
	return "", false
}
