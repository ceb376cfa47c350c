package domain

import "time"

// KindSummary reports what a backup run did for one item kind.
type KindSummary struct {
	// Fetched is the number of items the pager yielded.
	Fetched int

	// Created is how many of those were new record files.
	Created int

	// Updated is how many overwrote an existing record file.
	Updated int

	// Cursor is the kind's cursor after the run.
	Cursor time.Time
}

// RunSummary reports the outcome of one backup run across all kinds.
type RunSummary struct {
	// RunID uniquely identifies the run in logs.
	RunID string

	// Kinds holds the per-kind outcomes, present only for kinds
	// that completed their walk in this run.
	Kinds map[ItemKind]KindSummary

	// Duration is the wall-clock time the run took.
	Duration time.Duration
}

// TotalFetched sums the fetched counts across kinds.
func (r *RunSummary) TotalFetched() int {
	total := 0
	for _, k := range r.Kinds {
		total += k.Fetched
	}
	return total
}
