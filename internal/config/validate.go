package config

import (
	"errors"
	"fmt"
	"regexp"
)

var bitratePattern = regexp.MustCompile(`^[0-9]+k?$`)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateBatch(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateAudio() error {
	if c.Audio.Format == "" {
		return errors.New("audio.format must be set")
	}
	if c.Audio.Codec == "" {
		return errors.New("audio.codec must be set")
	}
	if !bitratePattern.MatchString(c.Audio.Bitrate) {
		return fmt.Errorf("audio.bitrate %q is not a bitrate (expected forms like 192k)", c.Audio.Bitrate)
	}
	return nil
}

func (c *Config) validateTools() error {
	if c.Tools.FetchBinary == "" {
		return errors.New("tools.fetch_binary must be set")
	}
	if c.Tools.FFmpegBinary == "" {
		return errors.New("tools.ffmpeg_binary must be set")
	}
	return nil
}

func (c *Config) validateBatch() error {
	if c.Batch.Concurrency < 1 {
		return errors.New("batch.concurrency must be at least 1")
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.Enabled && c.History.Path == "" {
		return errors.New("history.path must be set when history.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not supported (console, json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q is not supported (debug, info, warn, error)", c.Logging.Level)
	}
}
