package config

const (
	defaultOutputDir     = "."
	defaultAudioFormat   = "mp3"
	defaultAudioCodec    = "libmp3lame"
	defaultAudioBitrate  = "192k"
	defaultFetchBinary   = "yt-dlp"
	defaultPythonBinary  = "python3"
	defaultFFmpegBinary  = "ffmpeg"
	defaultConcurrency   = 1
	defaultHistoryPath   = "~/.local/share/tonearm/history.db"
	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
		},
		Audio: Audio{
			Format:  defaultAudioFormat,
			Codec:   defaultAudioCodec,
			Bitrate: defaultAudioBitrate,
		},
		Tools: Tools{
			FetchBinary:  defaultFetchBinary,
			PythonBinary: defaultPythonBinary,
			FFmpegBinary: defaultFFmpegBinary,
		},
		Batch: Batch{
			Concurrency: defaultConcurrency,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
