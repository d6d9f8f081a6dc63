// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compare

import (
	"bytes"
	"strings"
	"testing"

	"github.com/scholarops/pubsync/pkg/types"
)

func pub(title string, year int) types.Publication {
	return types.Publication{Title: title, Year: types.Year(year)}
}

func TestCompareExactMatch(t *testing.T) {
	left := []types.Publication{pub("Adaptive Routing in Sensor Networks", 2021)}
	right := []types.Publication{pub("Adaptive Routing in Sensor Networks", 2021)}

	r := Compare(types.DefaultMergeConfig(), left, right)
	if len(r.Matched) != 1 || len(r.Potential) != 0 || len(r.OnlyLeft) != 0 || len(r.OnlyRight) != 0 {
		t.Fatalf("unexpected result: %+v", r)
	}
	if r.Matched[0].Score != 1.0 {
		t.Errorf("exact match score = %v, want 1.0", r.Matched[0].Score)
	}
}

func TestComparePotentialMatch(t *testing.T) {
	left := []types.Publication{pub("Towards a Public Climate Observatory", 2022)}
	right := []types.Publication{pub("Climate Observatory Development", 2023)}

	r := Compare(types.DefaultMergeConfig(), left, right)
	if len(r.Potential) != 1 {
		t.Fatalf("potential = %d, want 1", len(r.Potential))
	}
	if len(r.OnlyLeft) != 0 || len(r.OnlyRight) != 0 {
		t.Errorf("one-siders should be empty: %+v", r)
	}
}

func TestCompareDisjointLists(t *testing.T) {
	left := []types.Publication{pub("Latency Bounds for Consensus Protocols", 2022)}
	right := []types.Publication{pub("Genomic Markers in Crop Rotation", 2019)}

	r := Compare(types.DefaultMergeConfig(), left, right)
	if len(r.OnlyLeft) != 1 || len(r.OnlyRight) != 1 {
		t.Fatalf("unexpected result: %+v", r)
	}
	if len(r.Matched) != 0 || len(r.Potential) != 0 {
		t.Errorf("matched/potential should be empty: %+v", r)
	}
}

func TestCompareConsumesRightOnce(t *testing.T) {
	// Two identical left records, one right record: only the first
	// left record may claim it.
	left := []types.Publication{
		pub("A Survey of Stream Processing Engines", 2023),
		pub("A Survey of Stream Processing Engines", 2023),
	}
	right := []types.Publication{pub("A Survey of Stream Processing Engines", 2023)}

	r := Compare(types.DefaultMergeConfig(), left, right)
	if len(r.Matched) != 1 {
		t.Fatalf("matched = %d, want 1", len(r.Matched))
	}
	if len(r.OnlyLeft) != 1 {
		t.Fatalf("only-left = %d, want 1", len(r.OnlyLeft))
	}
	if len(r.OnlyRight) != 0 {
		t.Fatalf("only-right = %d, want 0", len(r.OnlyRight))
	}
}

func TestCompareYearTieBreak(t *testing.T) {
	left := []types.Publication{pub("A Survey of Stream Processing Engines", 2023)}
	right := []types.Publication{
		pub("A Survey of Stream Processing Engines", 2021),
		pub("A Survey of Stream Processing Engines", 2023),
	}

	r := Compare(types.DefaultMergeConfig(), left, right)
	if len(r.Matched) != 1 {
		t.Fatalf("matched = %d, want 1", len(r.Matched))
	}
	if got := int(r.Matched[0].Right.Year); got != 2023 {
		t.Errorf("tie broke to year %d, want 2023", got)
	}
}

func TestCompareEmptyTitles(t *testing.T) {
	left := []types.Publication{{Authors: types.AuthorList{"A. Person"}}}
	right := []types.Publication{{Venue: "Workshop on Nothing"}}

	r := Compare(types.DefaultMergeConfig(), left, right)
	if len(r.OnlyLeft) != 1 || len(r.OnlyRight) != 1 {
		t.Fatalf("blank titles must land in the one-sider buckets: %+v", r)
	}
}

func TestWriteReport(t *testing.T) {
	left := []types.Publication{
		pub("Towards a Public Climate Observatory", 2022),
		pub("Latency Bounds for Consensus Protocols", 2022),
	}
	right := []types.Publication{
		pub("Climate Observatory Development", 2023),
		pub("Genomic Markers in Crop Rotation", 2019),
	}

	r := Compare(types.DefaultMergeConfig(), left, right)

	var buf bytes.Buffer
	WriteReport(&buf, "publications.json", "scholar.json", r)
	out := buf.String()

	for _, want := range []string{
		"PUBLICATION COMPARISON REPORT",
		"POTENTIAL MATCHES - REVIEW NEEDED:",
		"LEFT:  Towards a Public Climate Observatory (2022)",
		"RIGHT: Climate Observatory Development (2023)",
		"ONLY IN publications.json:",
		"Latency Bounds for Consensus Protocols",
		"ONLY IN scholar.json:",
		"Genomic Markers in Crop Rotation",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}
