package playlist

import (
	"os"
	"strings"
)

var youtubeDomains = []string{
	"youtube.com",
	"youtu.be",
	"m.youtube.com",
	"www.youtube.com",
}

// IsFile reports whether the locator names a local JSON playlist file. A
// .json suffix on a non-URL counts even when the file does not exist yet;
// the load step reports the missing file.
func IsFile(locator string) bool {
	lowered := strings.ToLower(locator)
	if !strings.HasSuffix(lowered, ".json") {
		return false
	}
	if strings.HasPrefix(lowered, "http") {
		if _, err := os.Stat(locator); err == nil {
			return true
		}
		return false
	}
	return true
}

// IsPlaylistURL reports whether the locator is a remote playlist: a YouTube
// URL carrying a list= parameter, either as a direct playlist link or a
// watch link inside a playlist.
func IsPlaylistURL(locator string) bool {
	if !strings.HasPrefix(locator, "http") {
		return false
	}
	return IsVideoURL(locator) && strings.Contains(locator, "list=")
}

// IsVideoURL reports whether the locator belongs to a recognized service
// domain.
func IsVideoURL(locator string) bool {
	for _, domain := range youtubeDomains {
		if strings.Contains(locator, domain) {
			return true
		}
	}
	return false
}
