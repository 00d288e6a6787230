// Package ytdlp wraps the external fetch tool. The tool is reachable two
// ways depending on how it was installed: as the yt-dlp executable or as a
// Python module. Every operation tries the configured invocation forms in
// order and accepts the first that succeeds; when all fail, the first
// form's failure detail is what gets reported.
package ytdlp
