// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge commits a batch of candidate publications into the
// persisted store. The executor is fail-closed: it loads, classifies,
// reports, asks the injected Decider for a verdict, snapshots the store
// to a timestamped backup, and only then mutates. Any failure before
// the final atomic write leaves the store untouched.
package merge

import (
	"fmt"
	"io"
	"time"

	"github.com/scholarops/pubsync/internal/dedup"
	"github.com/scholarops/pubsync/internal/store"
	"github.com/scholarops/pubsync/pkg/types"
)

const updatedLayout = "2006-01-02 15:04:05"

// Options configures a merge run.
type Options struct {
	// StorePath is the canonical publications store. It must already
	// exist; a missing or unreadable store aborts before any mutation.
	StorePath string

	// Config carries the classification thresholds and title
	// qualifiers. Zero thresholds fall back to the defaults.
	Config types.MergeConfig

	// Decider supplies the operator verdict. Required.
	Decider Decider

	// Now stamps the backup file and LastUpdated. Defaults to time.Now.
	Now func() time.Time
}

// Summary describes what a merge run did.
type Summary struct {
	Existing          int
	Candidates        int
	New               int
	DuplicatesSkipped int
	PotentialReviewed int
	PotentialAccepted int
	Unscored          int

	// Added is the number of records appended to the store.
	Added int

	// Committed is true when the store was (or would have been, for a
	// no-op batch) left in its final state. A declined merge reports
	// Committed false.
	Committed bool

	// BackupPath is the snapshot written before mutation, empty when
	// the run made no changes.
	BackupPath string
}

// Run merges batch into the store at opts.StorePath, writing the
// classification report to w. Side effects happen in a strict order:
// load, classify, report, decide, backup, append, write. A batch that
// adds nothing is a successful no-op and creates no backup.
func Run(opts Options, batch *types.Store, w io.Writer) (Summary, error) {
	if opts.Decider == nil {
		return Summary{}, fmt.Errorf("merge: no decider configured")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	st, err := store.Load(opts.StorePath)
	if err != nil {
		return Summary{}, fmt.Errorf("loading store: %w", err)
	}

	matcher := dedup.NewMatcher(opts.Config)
	part := matcher.Partition(st.Publications, batch.Publications)

	summary := Summary{
		Existing:          len(st.Publications),
		Candidates:        len(batch.Publications),
		New:               len(part.New),
		DuplicatesSkipped: len(part.Duplicates),
		PotentialReviewed: len(part.Potential),
		Unscored:          len(part.Unscored),
	}

	writeReport(w, summary, part)

	decision, err := opts.Decider.Decide(part)
	if err != nil {
		return summary, fmt.Errorf("merge decision: %w", err)
	}
	if !decision.Proceed {
		fmt.Fprintln(w, "\nMerge cancelled. No changes made.")
		return summary, nil
	}
	if decision.AcceptPotential != nil && len(decision.AcceptPotential) != len(part.Potential) {
		return summary, fmt.Errorf("merge decision covers %d of %d potential duplicates",
			len(decision.AcceptPotential), len(part.Potential))
	}

	toAdd := make([]types.Publication, 0, len(batch.Publications))
	toAdd = append(toAdd, part.New...)
	toAdd = append(toAdd, part.Unscored...)
	for i, r := range part.Potential {
		if decision.AcceptPotential != nil && decision.AcceptPotential[i] {
			toAdd = append(toAdd, r.Candidate)
			summary.PotentialAccepted++
		}
	}

	if len(toAdd) == 0 {
		fmt.Fprintln(w, "\nNo new publications to add. The store is up to date.")
		summary.Committed = true
		return summary, nil
	}

	backupPath, err := store.Backup(opts.StorePath, now())
	if err != nil {
		return summary, fmt.Errorf("backing up store: %w", err)
	}
	summary.BackupPath = backupPath

	st.Publications = append(st.Publications, toAdd...)
	if batch.AuthorInfo != nil {
		st.AuthorInfo = batch.AuthorInfo
	}
	st.LastUpdated = now().Format(updatedLayout)
	st.TotalPublications = len(st.Publications)

	if err := store.Save(opts.StorePath, st); err != nil {
		return summary, fmt.Errorf("writing store: %w", err)
	}

	summary.Added = len(toAdd)
	summary.Committed = true
	fmt.Fprintf(w, "\nAdded %d publication(s); store now holds %d.\n", summary.Added, st.TotalPublications)
	fmt.Fprintf(w, "Backup saved to %s\n", backupPath)
	return summary, nil
}
