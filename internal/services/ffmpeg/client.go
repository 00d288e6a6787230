// Package ffmpeg wraps the external transcoder. Success is signaled by the
// process exit status; on failure the diagnostic is lifted from stderr.
package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// Client defines the transcode operation the converter needs.
type Client interface {
	// Transcode converts inputPath into outputPath with the configured
	// audio codec and bitrate, overwriting an existing output of the same
	// name.
	Transcode(ctx context.Context, inputPath, outputPath string) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default ffmpeg binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithAudio overrides codec and bitrate.
func WithAudio(codec, bitrate string) Option {
	return func(c *CLI) {
		if codec != "" {
			c.codec = codec
		}
		if bitrate != "" {
			c.bitrate = bitrate
		}
	}
}

// CLI invokes ffmpeg as a subprocess.
type CLI struct {
	binary  string
	codec   string
	bitrate string
}

// NewCLI constructs a client with the repository defaults (libmp3lame at a
// fixed 192k).
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg", codec: "libmp3lame", bitrate: "192k"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

func (c *CLI) Transcode(ctx context.Context, inputPath, outputPath string) error {
	if inputPath == "" {
		return errors.New("input path required")
	}
	if outputPath == "" {
		return errors.New("output path required")
	}

	args := []string{
		"-i", inputPath,
		"-codec:a", c.codec,
		"-b:a", c.bitrate,
		"-y",
		outputPath,
	}
	cmd := commandContext(ctx, c.binary, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if detail := stderrTail(stderr.String()); detail != "" {
			return fmt.Errorf("transcode %s: %w: %s", inputPath, err, detail)
		}
		return fmt.Errorf("transcode %s: %w", inputPath, err)
	}
	return nil
}

// stderrTail returns the last non-empty stderr line; ffmpeg puts the
// actionable message there, after pages of banner and stream info.
func stderrTail(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

var _ Client = (*CLI)(nil)
