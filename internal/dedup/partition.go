// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dedup

import (
	"github.com/scholarops/pubsync/pkg/types"
)

// Classification is the outcome of matching a candidate against the store.
type Classification string

const (
	// ClassNew marks a candidate with no plausible match in the store.
	ClassNew Classification = "new"

	// ClassDuplicate marks a candidate whose best match scores at or
	// above the duplicate threshold.
	ClassDuplicate Classification = "duplicate"

	// ClassPotential marks a candidate in the review band: similar
	// enough to worry, not similar enough to skip silently.
	ClassPotential Classification = "potential"
)

// MatchResult pairs a candidate with its best-scoring existing record.
// Best is nil when the store offered no match target at all.
type MatchResult struct {
	Candidate types.Publication
	Best      *types.Publication
	Score     float64
	Class     Classification
}

// Partition is the classified split of a candidate batch.
type Partition struct {
	// New holds candidates with no plausible existing match. Merging
	// appends these verbatim.
	New []types.Publication

	// Duplicates holds candidates already present in the store; they
	// are skipped at merge time.
	Duplicates []MatchResult

	// Potential holds candidates in the review band, awaiting an
	// operator verdict.
	Potential []MatchResult

	// Unscored holds candidates whose titles normalize to the empty
	// string. They cannot be compared, so they pass through as new
	// rather than being dropped, and the report calls them out for a
	// manual audit.
	Unscored []types.Publication
}

// TrulyNew returns the number of candidates that merging would add
// before any potential-duplicate verdicts.
func (p Partition) TrulyNew() int {
	return len(p.New) + len(p.Unscored)
}

// Matcher classifies candidate publications against an existing store.
type Matcher struct {
	norm   Normalizer
	dup    float64
	review float64
}

// NewMatcher builds a Matcher from the given thresholds and qualifier
// list. Zero thresholds fall back to the documented defaults.
func NewMatcher(cfg types.MergeConfig) Matcher {
	dup, review := cfg.DupThreshold, cfg.ReviewThreshold
	if dup == 0 {
		dup = types.DefaultDupThreshold
	}
	if review == 0 {
		review = types.DefaultReviewThreshold
	}
	return Matcher{
		norm:   NewNormalizer(cfg.TitleQualifiers...),
		dup:    dup,
		review: review,
	}
}

// Partition scores every candidate against every existing record and
// classifies each by its best match. The scan is deterministic: the
// best match is the maximum-scoring record, ties broken by year
// agreement and then by store order. Cost is O(existing x candidates)
// title comparisons, which is fine at personal-publication-list scale
// (hundreds of records) but would want bucketing by title prefix or
// year before being reused on anything larger.
func (m Matcher) Partition(existing, candidates []types.Publication) Partition {
	var p Partition

	normExisting := make([]string, len(existing))
	for i, pub := range existing {
		normExisting[i] = m.norm.Normalize(pub.Title)
	}

	for _, cand := range candidates {
		normTitle := m.norm.Normalize(cand.Title)
		if normTitle == "" {
			p.Unscored = append(p.Unscored, cand)
			continue
		}

		// An empty store offers no match target: everything is new.
		if len(existing) == 0 {
			p.New = append(p.New, cand)
			continue
		}

		bestIdx, bestScore, bestYearAgrees := -1, 0.0, false
		for j := range existing {
			score := Similarity(normTitle, normExisting[j])
			agrees := yearAgrees(cand.Year, existing[j].Year)
			switch {
			case score > bestScore:
				bestIdx, bestScore, bestYearAgrees = j, score, agrees
			case score == bestScore && bestIdx >= 0 && agrees && !bestYearAgrees:
				bestIdx, bestYearAgrees = j, true
			}
		}

		result := MatchResult{Candidate: cand, Score: bestScore}
		if bestIdx >= 0 {
			result.Best = &existing[bestIdx]
		}

		switch {
		case bestScore >= m.dup:
			result.Class = ClassDuplicate
			p.Duplicates = append(p.Duplicates, result)
		case bestScore >= m.review:
			result.Class = ClassPotential
			p.Potential = append(p.Potential, result)
		default:
			result.Class = ClassNew
			p.New = append(p.New, cand)
		}
	}

	return p
}

// yearAgrees reports whether both years are known and equal.
func yearAgrees(a, b types.Year) bool {
	return a.Known() && b.Known() && a == b
}
