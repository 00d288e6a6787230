// Package library inventories the audio files already materialized in an
// output directory. The inventory is a point-in-time snapshot built once per
// run; the media files themselves are the only cache this tool keeps.
package library

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"tonearm/internal/textutil"
)

// Inventory is the set of sanitized stems present in the output directory.
type Inventory map[string]struct{}

// Contains reports whether a sanitized stem is already materialized.
func (inv Inventory) Contains(stem string) bool {
	_, ok := inv[stem]
	return ok
}

// Len returns the number of stems in the inventory.
func (inv Inventory) Len() int { return len(inv) }

// Scan builds an inventory of the files with the given audio extension
// directly inside dir (non-recursive). Stems are passed through the
// sanitizer so they compare cleanly against sanitized titles. A missing
// directory is a valid initial state and yields an empty inventory.
func Scan(dir, ext string) (Inventory, error) {
	inv := make(Inventory)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return inv, nil
		}
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), ext) {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		inv[textutil.SanitizeTitle(stem)] = struct{}{}
	}
	return inv, nil
}

// PathFor returns the expected output path for a stem.
func PathFor(dir, stem, ext string) string {
	return filepath.Join(dir, stem+ext)
}
