// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"testing"

	"github.com/scholarops/pubsync/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.IndexConfig{IndexDir: t.TempDir(), MaxResults: 20})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func fixturePubs() []types.Publication {
	return []types.Publication{
		{
			Title:     "Adaptive Routing in Sensor Networks",
			Authors:   types.AuthorList{"A Smith", "B Jones"},
			Year:      2021,
			Venue:     "International Conference on Networking",
			Citations: 42,
			Source:    types.SourceCV,
		},
		{
			Title:     "Latency Bounds for Consensus Protocols",
			Authors:   types.AuthorList{"B Jones"},
			Year:      2022,
			Venue:     "Journal of Distributed Systems",
			Citations: 7,
			Source:    types.SourceScholarFetched,
		},
		{
			Title:   "A Survey of Stream Processing Engines",
			Authors: types.AuthorList{"C Lee"},
			Year:    2022,
			Source:  types.SourceScholarManual,
		},
	}
}

func TestRebuildAndCount(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.Rebuild(ctx, fixturePubs()); err != nil {
		t.Fatal(err)
	}
	n, err := s.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("count = %d, want 3", n)
	}

	// A rebuild replaces, never appends.
	if err := s.Rebuild(ctx, fixturePubs()[:1]); err != nil {
		t.Fatal(err)
	}
	n, err = s.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("count after rebuild = %d, want 1", n)
	}
}

func TestSearchFullText(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	if err := s.Rebuild(ctx, fixturePubs()); err != nil {
		t.Fatal(err)
	}

	results, err := s.Search(ctx, QueryOptions{Query: "routing"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	got := results[0]
	if got.Title != "Adaptive Routing in Sensor Networks" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Authors.String() != "A Smith, B Jones" {
		t.Errorf("authors = %q", got.Authors.String())
	}
	if got.Year != 2021 || got.Citations != 42 || got.Source != types.SourceCV {
		t.Errorf("fields not round-tripped: %+v", got)
	}
}

func TestSearchMatchesAuthorsAndVenue(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	if err := s.Rebuild(ctx, fixturePubs()); err != nil {
		t.Fatal(err)
	}

	byAuthor, err := s.Search(ctx, QueryOptions{Query: "jones"})
	if err != nil {
		t.Fatal(err)
	}
	if len(byAuthor) != 2 {
		t.Errorf("author search got %d results, want 2", len(byAuthor))
	}

	byVenue, err := s.Search(ctx, QueryOptions{Query: "distributed"})
	if err != nil {
		t.Fatal(err)
	}
	if len(byVenue) != 1 {
		t.Errorf("venue search got %d results, want 1", len(byVenue))
	}
}

func TestSearchFilters(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	if err := s.Rebuild(ctx, fixturePubs()); err != nil {
		t.Fatal(err)
	}

	byYear, err := s.Search(ctx, QueryOptions{Year: 2022})
	if err != nil {
		t.Fatal(err)
	}
	if len(byYear) != 2 {
		t.Fatalf("year filter got %d results, want 2", len(byYear))
	}

	bySource, err := s.Search(ctx, QueryOptions{Source: types.SourceScholarManual})
	if err != nil {
		t.Fatal(err)
	}
	if len(bySource) != 1 || bySource[0].Title != "A Survey of Stream Processing Engines" {
		t.Fatalf("source filter got %+v", bySource)
	}

	combined, err := s.Search(ctx, QueryOptions{Query: "jones", Year: 2022})
	if err != nil {
		t.Fatal(err)
	}
	if len(combined) != 1 || combined[0].Title != "Latency Bounds for Consensus Protocols" {
		t.Fatalf("combined filter got %+v", combined)
	}
}

func TestSearchFilterOnlyOrder(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	if err := s.Rebuild(ctx, fixturePubs()); err != nil {
		t.Fatal(err)
	}

	results, err := s.Search(ctx, QueryOptions{Year: 0})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	// Newest year first, title ascending within a year.
	wantOrder := []string{
		"A Survey of Stream Processing Engines",
		"Latency Bounds for Consensus Protocols",
		"Adaptive Routing in Sensor Networks",
	}
	for i, want := range wantOrder {
		if results[i].Title != want {
			t.Errorf("results[%d] = %q, want %q", i, results[i].Title, want)
		}
	}
}

func TestSearchMaxResults(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	if err := s.Rebuild(ctx, fixturePubs()); err != nil {
		t.Fatal(err)
	}

	results, err := s.Search(ctx, QueryOptions{MaxResults: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
}

func TestSearchNoMatches(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	if err := s.Rebuild(ctx, fixturePubs()); err != nil {
		t.Fatal(err)
	}

	results, err := s.Search(ctx, QueryOptions{Query: "zymurgy"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Fatalf("got %d results, want 0", len(results))
	}
}

func TestSchemaSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	cfg := types.IndexConfig{IndexDir: dir}

	s, err := NewStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := s.Rebuild(ctx, fixturePubs()); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s2, err := NewStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	n, err := s2.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("count after reopen = %d, want 3", n)
	}
}
