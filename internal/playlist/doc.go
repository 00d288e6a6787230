// Package playlist loads persisted JSON playlists and classifies input
// locators into the three supported shapes: single video URL, playlist URL,
// and local playlist file.
package playlist
