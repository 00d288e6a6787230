// Package reconcile diffs a requested set of media items against the
// on-disk inventory so the converter is never invoked for an item that is
// already satisfied. Skipping here is what keeps batch runs from
// re-triggering the source's rate limiting.
package reconcile

import (
	"tonearm/internal/library"
	"tonearm/internal/media"
	"tonearm/internal/textutil"
)

// Entry pairs an item with its position in the original input so reports
// can be reassembled in input order.
type Entry struct {
	Item     media.Item
	Position int
}

// Result partitions the input. Missing and Present form an order-preserving
// perfect cover of the fetchable items; Failed holds items that can never
// be fetched because they carry no locator.
type Result struct {
	Missing []Entry
	Present []Entry
	Failed  []Entry
}

// Total returns the size of the original input set.
func (r Result) Total() int {
	return len(r.Missing) + len(r.Present) + len(r.Failed)
}

// Partition classifies every item by whether its sanitized title is already
// in the inventory. Relative order within each partition matches the input.
func Partition(items []media.Item, inv library.Inventory) Result {
	var res Result
	for i, item := range items {
		entry := Entry{Item: item, Position: i}
		switch {
		case !item.HasLocator():
			res.Failed = append(res.Failed, entry)
		case inv.Contains(textutil.SanitizeTitle(item.Title)):
			res.Present = append(res.Present, entry)
		default:
			res.Missing = append(res.Missing, entry)
		}
	}
	return res
}
