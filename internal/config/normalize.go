package config

import "strings"

// normalize trims and expands user-supplied values so validation and the
// rest of the pipeline see canonical forms.
func (c *Config) normalize() error {
	c.Paths.OutputDir = strings.TrimSpace(c.Paths.OutputDir)
	if c.Paths.OutputDir == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	expanded, err := expandPath(c.Paths.OutputDir)
	if err != nil {
		return err
	}
	c.Paths.OutputDir = expanded

	c.Audio.Format = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(c.Audio.Format), "."))
	c.Audio.Codec = strings.TrimSpace(c.Audio.Codec)
	c.Audio.Bitrate = strings.ToLower(strings.TrimSpace(c.Audio.Bitrate))

	c.Tools.FetchBinary = strings.TrimSpace(c.Tools.FetchBinary)
	c.Tools.PythonBinary = strings.TrimSpace(c.Tools.PythonBinary)
	c.Tools.FFmpegBinary = strings.TrimSpace(c.Tools.FFmpegBinary)

	if c.History.Path != "" {
		historyPath, err := expandPath(c.History.Path)
		if err != nil {
			return err
		}
		c.History.Path = historyPath
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	return nil
}
