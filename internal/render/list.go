// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns the publication store into human-readable and
// machine-readable documents. Ordering is decided here: the store keeps
// records in insertion order, and presentation sorts its own copy.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/scholarops/pubsync/pkg/types"
)

const listRule = "================================================================================"

// SortedByYear returns a copy of pubs sorted newest year first. The
// sort is stable, so records within a year keep their store order.
func SortedByYear(pubs []types.Publication) []types.Publication {
	sorted := make([]types.Publication, len(pubs))
	copy(sorted, pubs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Year > sorted[j].Year
	})
	return sorted
}

// WriteList writes the publications list as a plain-text document: a
// header with the author metrics, then one numbered entry per
// publication, newest first.
func WriteList(w io.Writer, st *types.Store, cfg types.RenderConfig, now time.Time) {
	fmt.Fprintln(w, listRule)
	fmt.Fprintln(w, "PUBLICATIONS LIST")
	fmt.Fprintln(w, listRule)
	fmt.Fprintln(w)

	if info := st.AuthorInfo; info != nil {
		fmt.Fprintf(w, "Author: %s\n", info.Name)
		fmt.Fprintf(w, "Total citations: %d\n", info.CitedBy)
		fmt.Fprintf(w, "h-index: %d\n", info.HIndex)
		fmt.Fprintf(w, "Generated: %s\n\n", now.Format("2006-01-02"))
		fmt.Fprintln(w, listRule)
		fmt.Fprintln(w)
	}

	for i, pub := range SortedByYear(st.Publications) {
		fmt.Fprintf(w, "%d. %s\n", i+1, formatEntry(pub))
		if cfg.IncludeCitations && pub.Citations > 0 {
			fmt.Fprintf(w, "   Citations: %d\n", pub.Citations)
		}
		fmt.Fprintln(w)
	}
}

// formatEntry renders one citation line: authors (year). title. venue.
// Missing fields are omitted rather than left as empty segments.
func formatEntry(pub types.Publication) string {
	var b strings.Builder
	if len(pub.Authors) > 0 {
		b.WriteString(pub.Authors.String())
		b.WriteString(" ")
	}
	if pub.Year.Known() {
		fmt.Fprintf(&b, "(%s). ", pub.Year)
	}
	b.WriteString(pub.Title)
	b.WriteString(".")
	if pub.Venue != "" {
		b.WriteString(" ")
		b.WriteString(pub.Venue)
		b.WriteString(".")
	}
	return b.String()
}
