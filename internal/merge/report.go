// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"fmt"
	"io"
	"strings"

	"github.com/scholarops/pubsync/internal/dedup"
)

const reportRule = "======================================================================"

// maxSkippedShown caps the duplicates listing; the full count stays in
// the summary block.
const maxSkippedShown = 5

// writeReport prints the classification report the operator reviews
// before the merge is confirmed.
func writeReport(w io.Writer, s Summary, p dedup.Partition) {
	fmt.Fprintln(w, reportRule)
	fmt.Fprintln(w, "INCREMENTAL UPDATE REPORT")
	fmt.Fprintln(w, reportRule)
	fmt.Fprintf(w, "\nExisting publications: %d\n", s.Existing)
	fmt.Fprintf(w, "Batch contains:        %d\n", s.Candidates)
	fmt.Fprintf(w, "\nTruly new:                     %d\n", s.New)
	fmt.Fprintf(w, "Duplicates (skipped):          %d\n", s.DuplicatesSkipped)
	fmt.Fprintf(w, "Potential duplicates (review): %d\n", s.PotentialReviewed)
	fmt.Fprintf(w, "Unparseable titles (audit):    %d\n", s.Unscored)

	if len(p.New) > 0 {
		fmt.Fprintln(w, "\nTRULY NEW:")
		for i, pub := range p.New {
			fmt.Fprintf(w, "  %d. %s (%s)\n", i+1, pub.Title, pub.Year)
		}
	}

	if len(p.Potential) > 0 {
		fmt.Fprintln(w, "\nPOTENTIAL DUPLICATES - REVIEW NEEDED:")
		for i, r := range p.Potential {
			fmt.Fprintf(w, "  %d. Similarity: %.0f%%\n", i+1, r.Score*100)
			fmt.Fprintf(w, "     NEW:      %s (%s)\n", r.Candidate.Title, r.Candidate.Year)
			if r.Best != nil {
				fmt.Fprintf(w, "     EXISTING: %s (%s)\n", r.Best.Title, r.Best.Year)
			}
		}
	}

	if len(p.Duplicates) > 0 {
		fmt.Fprintln(w, "\nDUPLICATES SKIPPED:")
		shown := p.Duplicates
		if len(shown) > maxSkippedShown {
			shown = shown[:maxSkippedShown]
		}
		for i, r := range shown {
			fmt.Fprintf(w, "  %d. %s (%.0f%%)\n", i+1, r.Candidate.Title, r.Score*100)
		}
		if extra := len(p.Duplicates) - len(shown); extra > 0 {
			fmt.Fprintf(w, "  ... and %d more\n", extra)
		}
	}

	if len(p.Unscored) > 0 {
		fmt.Fprintln(w, "\nUNPARSEABLE TITLES - MANUAL AUDIT:")
		for i, pub := range p.Unscored {
			desc := describe(pub.Venue, pub.Authors.String(), string(pub.Source))
			fmt.Fprintf(w, "  %d. %s\n", i+1, desc)
		}
	}
}

// describe joins the non-empty fields of a record whose title gave the
// normalizer nothing to work with.
func describe(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return "(no identifying fields)"
	}
	return strings.Join(kept, " / ")
}
