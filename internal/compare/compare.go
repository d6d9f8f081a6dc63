// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compare reconciles two publication lists without mutating
// either. It answers the question the merge engine deliberately does
// not: which records exist on only one side, and which pairs look like
// the same work under different titles.
package compare

import (
	"fmt"
	"io"

	"github.com/scholarops/pubsync/internal/dedup"
	"github.com/scholarops/pubsync/pkg/types"
)

// Match pairs a left-side record with its best right-side counterpart.
type Match struct {
	Left  types.Publication
	Right types.Publication
	Score float64
}

// Result holds the outcome of a comparison. Matched pairs cleared the
// duplicate threshold; Potential pairs landed in the review band. A
// right-side record is consumed by at most one pair, so OnlyLeft and
// OnlyRight hold the genuine one-siders.
type Result struct {
	Matched   []Match
	Potential []Match
	OnlyLeft  []types.Publication
	OnlyRight []types.Publication
}

// Compare greedily pairs each left record with its best unconsumed
// right record. Left order drives the pairing, so the result is
// deterministic for a given pair of lists. Ties on score go to the
// right record whose year agrees with the left one, then to the
// earlier right record.
func Compare(cfg types.MergeConfig, left, right []types.Publication) Result {
	dup, review := cfg.DupThreshold, cfg.ReviewThreshold
	if dup == 0 {
		dup = types.DefaultDupThreshold
	}
	if review == 0 {
		review = types.DefaultReviewThreshold
	}
	norm := dedup.NewNormalizer(cfg.TitleQualifiers...)

	normRight := make([]string, len(right))
	for i, pub := range right {
		normRight[i] = norm.Normalize(pub.Title)
	}
	consumed := make([]bool, len(right))

	var res Result
	for _, l := range left {
		normTitle := norm.Normalize(l.Title)
		if normTitle == "" {
			res.OnlyLeft = append(res.OnlyLeft, l)
			continue
		}

		bestIdx, bestScore, bestAgrees := -1, 0.0, false
		for j := range right {
			if consumed[j] || normRight[j] == "" {
				continue
			}
			score := dedup.Similarity(normTitle, normRight[j])
			agrees := l.Year.Known() && right[j].Year.Known() && l.Year == right[j].Year
			switch {
			case score > bestScore:
				bestIdx, bestScore, bestAgrees = j, score, agrees
			case score == bestScore && bestIdx >= 0 && agrees && !bestAgrees:
				bestIdx, bestAgrees = j, true
			}
		}

		switch {
		case bestIdx >= 0 && bestScore >= dup:
			consumed[bestIdx] = true
			res.Matched = append(res.Matched, Match{Left: l, Right: right[bestIdx], Score: bestScore})
		case bestIdx >= 0 && bestScore >= review:
			consumed[bestIdx] = true
			res.Potential = append(res.Potential, Match{Left: l, Right: right[bestIdx], Score: bestScore})
		default:
			res.OnlyLeft = append(res.OnlyLeft, l)
		}
	}

	for j, pub := range right {
		if !consumed[j] {
			res.OnlyRight = append(res.OnlyRight, pub)
		}
	}
	return res
}

// WriteReport prints a reconciliation report. leftName and rightName
// label the two sides, typically the file each list came from.
func WriteReport(w io.Writer, leftName, rightName string, r Result) {
	fmt.Fprintln(w, "======================================================================")
	fmt.Fprintln(w, "PUBLICATION COMPARISON REPORT")
	fmt.Fprintln(w, "======================================================================")
	fmt.Fprintf(w, "\nLeft  (%s): %d publications\n", leftName, len(r.Matched)+len(r.Potential)+len(r.OnlyLeft))
	fmt.Fprintf(w, "Right (%s): %d publications\n", rightName, len(r.Matched)+len(r.Potential)+len(r.OnlyRight))
	fmt.Fprintf(w, "\nMatched:           %d\n", len(r.Matched))
	fmt.Fprintf(w, "Potential matches: %d\n", len(r.Potential))
	fmt.Fprintf(w, "Only in left:      %d\n", len(r.OnlyLeft))
	fmt.Fprintf(w, "Only in right:     %d\n", len(r.OnlyRight))

	if len(r.Potential) > 0 {
		fmt.Fprintln(w, "\nPOTENTIAL MATCHES - REVIEW NEEDED:")
		for i, m := range r.Potential {
			fmt.Fprintf(w, "  %d. Similarity: %.0f%%\n", i+1, m.Score*100)
			fmt.Fprintf(w, "     LEFT:  %s (%s)\n", m.Left.Title, m.Left.Year)
			fmt.Fprintf(w, "     RIGHT: %s (%s)\n", m.Right.Title, m.Right.Year)
		}
	}

	if len(r.OnlyLeft) > 0 {
		fmt.Fprintf(w, "\nONLY IN %s:\n", leftName)
		for i, pub := range r.OnlyLeft {
			fmt.Fprintf(w, "  %d. %s (%s)\n", i+1, pub.Title, pub.Year)
		}
	}

	if len(r.OnlyRight) > 0 {
		fmt.Fprintf(w, "\nONLY IN %s:\n", rightName)
		for i, pub := range r.OnlyRight {
			fmt.Fprintf(w, "  %d. %s (%s)\n", i+1, pub.Title, pub.Year)
		}
	}
}
