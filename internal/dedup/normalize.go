// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedup implements the duplicate-detection engine: title
// normalization, a sequence-similarity scorer, and the partitioner that
// classifies candidate publications against the existing store.
package dedup

import "strings"

// DefaultQualifiers lists parenthetical qualifiers that carry no identity:
// the same paper may appear with and without them across sources.
var DefaultQualifiers = []string{
	"extended abstract",
	"poster",
	"demo",
	"short paper",
	"invited talk",
	"preprint",
	"in press",
	"under review",
}

// Normalizer canonicalizes titles for comparison. The zero value uses
// DefaultQualifiers.
type Normalizer struct {
	qualifiers []string
}

// NewNormalizer returns a Normalizer stripping the given parenthetical
// qualifiers. With no arguments the built-in list is used.
func NewNormalizer(qualifiers ...string) Normalizer {
	if len(qualifiers) == 0 {
		qualifiers = DefaultQualifiers
	}
	lowered := make([]string, len(qualifiers))
	for i, q := range qualifiers {
		lowered[i] = strings.ToLower(strings.TrimSpace(q))
	}
	return Normalizer{qualifiers: lowered}
}

// Normalize lowercases the title, strips qualifier suffixes and
// punctuation, and collapses whitespace runs. Normalize is pure and
// idempotent: applying it twice yields the same string.
func (n Normalizer) Normalize(title string) string {
	t := strings.ToLower(title)

	qualifiers := n.qualifiers
	if qualifiers == nil {
		qualifiers = DefaultQualifiers
	}
	for _, q := range qualifiers {
		t = strings.ReplaceAll(t, "("+q+")", " ")
	}

	var b strings.Builder
	b.Grow(len(t))
	for _, r := range t {
		switch r {
		case '.', ',', ';', ':', '!', '?', '"', '\'':
		default:
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
