// Package media defines the item model shared by playlist loading,
// reconciliation, and conversion.
package media

import "strings"

// UnknownField is the placeholder for metadata the flat playlist listing
// cannot provide.
const UnknownField = "unknown"

// Item describes one piece of media to convert. Items are immutable once
// constructed. Identity for reconciliation is the sanitized title, not the
// external id; see the reconcile package.
type Item struct {
	Title         string
	SourceLocator string
	ExternalID    string
	Author        string
	Duration      string
	ViewCount     string
	PublishedAt   string
	ThumbnailURL  string
}

// NewItem builds an Item with metadata fields defaulted to UnknownField.
// The thumbnail URL is derived from the external id when one is known.
func NewItem(title, locator, externalID string) Item {
	item := Item{
		Title:         strings.TrimSpace(title),
		SourceLocator: strings.TrimSpace(locator),
		ExternalID:    strings.TrimSpace(externalID),
		Author:        UnknownField,
		Duration:      UnknownField,
		ViewCount:     UnknownField,
		PublishedAt:   UnknownField,
	}
	if item.ExternalID != "" {
		item.ThumbnailURL = "https://i.ytimg.com/vi/" + item.ExternalID + "/hqdefault.jpg"
	}
	return item
}

// HasLocator reports whether the item can be fetched at all.
func (i Item) HasLocator() bool {
	return i.SourceLocator != ""
}
