// Package report aggregates per-item conversion outcomes for the final
// summary.
package report

import "tonearm/internal/convert"

// Entry is one (title, outcome) pair in input order.
type Entry struct {
	Position int
	Outcome  convert.Outcome
}

// Report is the ordered result of a whole run.
type Report struct {
	Entries []Entry
}

// Counts holds the derived aggregates.
type Counts struct {
	Succeeded int
	Failed    int
	Skipped   int
}

// Counts tallies entries by class.
func (r Report) Counts() Counts {
	var c Counts
	for _, entry := range r.Entries {
		switch entry.Outcome.Class {
		case convert.ClassSuccess:
			c.Succeeded++
		case convert.ClassSkipped:
			c.Skipped++
		case convert.ClassFailure:
			c.Failed++
		}
	}
	return c
}

// Total returns the number of entries.
func (r Report) Total() int { return len(r.Entries) }

// AllSucceeded reports whether no item failed. Skipped items count as
// satisfied.
func (r Report) AllSucceeded() bool {
	return r.Counts().Failed == 0
}

// Failures returns the failed entries in order.
func (r Report) Failures() []Entry {
	var out []Entry
	for _, entry := range r.Entries {
		if entry.Outcome.Class == convert.ClassFailure {
			out = append(out, entry)
		}
	}
	return out
}
