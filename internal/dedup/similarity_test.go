// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dedup

import (
	"math"
	"testing"
)

func TestSimilarityReflexive(t *testing.T) {
	titles := []string{
		"a",
		"attention is all you need",
		"towards a public climate observatory",
		"übersicht über maschinelles lernen",
	}
	for _, title := range titles {
		if got := Similarity(title, title); got != 1.0 {
			t.Errorf("Similarity(%q, %q) = %f, want 1.0", title, title, got)
		}
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"towards a public climate observatory", "climate observatory development"},
		{"a public climate observatory", "a public climate conservatory"},
		{"graph neural networks", "neural graph networks"},
		{"short", "a considerably longer title about something else"},
	}
	for _, p := range pairs {
		ab, ba := Similarity(p[0], p[1]), Similarity(p[1], p[0])
		if ab != ba {
			t.Errorf("Similarity(%q, %q) = %f but reversed = %f", p[0], p[1], ab, ba)
		}
	}
}

func TestSimilarityEmpty(t *testing.T) {
	if got := Similarity("", ""); got != 1.0 {
		t.Errorf("Similarity of two empty strings = %f, want 1.0", got)
	}
	if got := Similarity("some title", ""); got != 0 {
		t.Errorf("Similarity against empty = %f, want 0", got)
	}
	if got := Similarity("", "some title"); got != 0 {
		t.Errorf("Similarity against empty = %f, want 0", got)
	}
}

func TestSimilarityScores(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{
			"subtitle overlap lands in review band",
			"towards a public climate observatory",
			"climate observatory development",
			0.76,
		},
		{
			"single-word edit scores high",
			"a public climate observatory",
			"a public climate conservatory",
			0.9474,
		},
		{
			"unrelated titles score low",
			"my new paper about climate",
			"deep learning for protein folding",
			0.3077,
		},
		{
			"hyphenation variant scores near one",
			"energy efficient routing in wireless sensor networks",
			"energy-efficient routing in wireless sensor networks",
			0.9808,
		},
		{
			"short title inside unrelated long title stays low",
			"climate",
			"the climate of mars dust storm dynamics",
			0.3043,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("Similarity(%q, %q) = %.4f, want %.4f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarityRange(t *testing.T) {
	pairs := [][2]string{
		{"a", "b"},
		{"abc", "abc def"},
		{"completely different", "something else entirely"},
		{"x y z", "z y x"},
	}
	for _, p := range pairs {
		got := Similarity(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("Similarity(%q, %q) = %f, out of [0,1]", p[0], p[1], got)
		}
	}
}

func TestSimilaritySubtitleAddition(t *testing.T) {
	// A verbatim title with a bolted-on subtitle should score as a
	// near-duplicate, not be dragged down by the extra length.
	got := Similarity(
		"deep learning for protein structure prediction",
		"deep learning for protein structure prediction a survey",
	)
	if got < 0.9 {
		t.Errorf("subtitle addition scored %f, want >= 0.9", got)
	}
}
