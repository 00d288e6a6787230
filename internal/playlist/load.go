package playlist

import (
	"encoding/json"
	"fmt"
	"os"

	"tonearm/internal/media"
)

// fileEntry mirrors one element of a persisted playlist. Only videoUrl is
// required; title and videoId are optional.
type fileEntry struct {
	VideoURL string `json:"videoUrl"`
	Title    string `json:"title"`
	VideoID  string `json:"videoId"`
}

// LoadFile parses a JSON playlist file into media items. Malformed JSON or
// a non-array top level is a fatal input error. Entries without a videoUrl
// are kept with an empty locator so the reconciler can report them as
// failed without aborting the batch.
func LoadFile(path string) ([]media.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read playlist %s: %w", path, err)
	}

	var entries []fileEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse playlist %s: %w", path, err)
	}

	items := make([]media.Item, 0, len(entries))
	for i, entry := range entries {
		title := entry.Title
		if title == "" {
			title = fmt.Sprintf("Video_%d", i+1)
		}
		items = append(items, media.NewItem(title, entry.VideoURL, entry.VideoID))
	}
	return items, nil
}
