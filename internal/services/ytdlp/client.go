package ytdlp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"tonearm/internal/logging"
	"tonearm/internal/media"
)

var commandContext = exec.CommandContext

// printSeparator delimits fields in flat playlist records. Chosen to be
// implausible inside a video title.
const printSeparator = "|||SEP|||"

// watchURLPrefix is the canonical shape of a single-video URL in flat
// playlist output; records that do not match are dropped with a warning.
const watchURLPrefix = "https://www.youtube.com/watch?v="

// Client defines the fetch tool operations the converter needs.
type Client interface {
	// Version confirms the tool is invocable at all.
	Version(ctx context.Context) (string, error)
	// Title returns the single-line title for a video locator.
	Title(ctx context.Context, locator string) (string, error)
	// ListFlat enumerates a remote playlist without downloading anything.
	ListFlat(ctx context.Context, locator string) ([]media.Item, error)
	// Download fetches best-available audio into the template path and
	// returns the tool's combined output for post-hoc file location.
	Download(ctx context.Context, locator, outputTemplate string) (string, error)
}

// Option configures the CLI client.
type Option func(*CLI)

// WithForms replaces the invocation forms tried for every operation.
func WithForms(forms ...[]string) Option {
	return func(c *CLI) {
		if len(forms) > 0 {
			c.forms = forms
		}
	}
}

// WithLogger attaches a logger for parse warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *CLI) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// CLI invokes the fetch tool as a subprocess.
type CLI struct {
	forms  [][]string
	logger *slog.Logger
}

// DefaultForms returns the invocation forms tried in order.
func DefaultForms() [][]string {
	return [][]string{
		{"yt-dlp"},
		{"python3", "-m", "yt_dlp"},
		{"python", "-m", "yt_dlp"},
	}
}

// NewCLI constructs a client using the default invocation forms.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{
		forms:  DefaultForms(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

func (c *CLI) Version(ctx context.Context) (string, error) {
	stdout, _, err := c.run(ctx, "--version")
	if err != nil {
		return "", err
	}
	return firstLine(stdout), nil
}

func (c *CLI) Title(ctx context.Context, locator string) (string, error) {
	if locator == "" {
		return "", errors.New("locator required")
	}
	stdout, _, err := c.run(ctx, "--get-title", locator)
	if err != nil {
		return "", err
	}
	title := firstLine(stdout)
	if title == "" {
		return "", errors.New("tool returned no title")
	}
	return title, nil
}

func (c *CLI) ListFlat(ctx context.Context, locator string) ([]media.Item, error) {
	if locator == "" {
		return nil, errors.New("locator required")
	}
	format := "%(title)s" + printSeparator + "%(webpage_url)s" + printSeparator + "%(id)s"
	stdout, _, err := c.run(ctx, "--flat-playlist", "--print", format, "--no-download", locator)
	if err != nil {
		return nil, err
	}

	var items []media.Item
	for lineNo, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, printSeparator)
		if len(parts) < 3 {
			c.logger.Warn("skipping unparseable playlist record",
				logging.Int("line", lineNo+1),
				logging.String("record", truncate(line, 80)))
			continue
		}
		title := strings.TrimSpace(parts[0])
		watchURL := strings.TrimSpace(parts[1])
		id := strings.TrimSpace(parts[2])
		if !strings.HasPrefix(watchURL, watchURLPrefix) {
			c.logger.Warn("skipping record with unexpected watch URL",
				logging.Int("line", lineNo+1),
				logging.String("url", watchURL))
			continue
		}
		items = append(items, media.NewItem(title, watchURL, id))
	}
	if len(items) == 0 {
		return nil, errors.New("no playlist entries found")
	}
	return items, nil
}

func (c *CLI) Download(ctx context.Context, locator, outputTemplate string) (string, error) {
	if locator == "" {
		return "", errors.New("locator required")
	}
	if outputTemplate == "" {
		return "", errors.New("output template required")
	}
	stdout, stderr, err := c.run(ctx,
		"--format", "bestaudio/best",
		"--output", outputTemplate,
		"--no-playlist",
		locator,
	)
	combined := stdout
	if stderr != "" {
		combined += "\n" + stderr
	}
	if err != nil {
		return combined, err
	}
	return combined, nil
}

// run tries every invocation form in order with the given arguments. The
// first success wins; when every form fails, the error from the first
// attempt is returned so the most expected installation shape is what the
// user sees.
func (c *CLI) run(ctx context.Context, args ...string) (string, string, error) {
	if len(c.forms) == 0 {
		return "", "", errors.New("no invocation forms configured")
	}

	var firstErr error
	for _, form := range c.forms {
		if len(form) == 0 {
			continue
		}
		argv := append(append([]string{}, form[1:]...), args...)
		cmd := commandContext(ctx, form[0], argv...)

		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			if firstErr == nil {
				firstErr = invocationError(form, err, stderr.String())
			}
			continue
		}
		return stdout.String(), stderr.String(), nil
	}
	if firstErr == nil {
		firstErr = errors.New("no invocation forms configured")
	}
	return "", "", firstErr
}

func invocationError(form []string, err error, stderr string) error {
	name := strings.Join(form, " ")
	if detail := lastLine(stderr); detail != "" {
		return fmt.Errorf("%s: %w: %s", name, err, detail)
	}
	return fmt.Errorf("%s: %w", name, err)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var _ Client = (*CLI)(nil)
