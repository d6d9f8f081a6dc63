// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pubsync pipeline:
// the publication record, the author header, and the JSON store document
// that both the merge engine and the collaborators (importer, fetcher,
// renderer) exchange.
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Source tags the provenance of a publication record.
type Source string

const (
	// SourceCV marks records transcribed from the CV document.
	SourceCV Source = "cv"

	// SourceScholarManual marks records pasted from a Scholar profile
	// and parsed by the manual importer.
	SourceScholarManual Source = "scholar-manual"

	// SourceScholarFetched marks records scraped from the public
	// Scholar profile page.
	SourceScholarFetched Source = "scholar-fetched"
)

// AuthorList holds publication authors in source order. Scholar exports
// and hand-maintained JSON disagree on the wire form: some files carry a
// JSON array of names, others a single comma-separated string. Unmarshal
// accepts both; marshal always emits an array.
type AuthorList []string

func (a *AuthorList) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		*a = names
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return fmt.Errorf("authors must be a string or an array of strings: %w", err)
	}

	*a = nil
	for _, name := range strings.Split(joined, ",") {
		if name = strings.TrimSpace(name); name != "" {
			*a = append(*a, name)
		}
	}
	return nil
}

// String joins the authors with commas for display.
func (a AuthorList) String() string {
	return strings.Join(a, ", ")
}

// Year is a publication year. Zero means unknown (a record without a
// parsed year), never the year 0. Unmarshal accepts a JSON number, a
// numeric string, or an empty string.
type Year int

func (y *Year) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*y = Year(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("year must be a number or a string: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*y = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("parsing year %q: %w", s, err)
	}
	*y = Year(n)
	return nil
}

// Known reports whether the year was actually parsed from the source.
func (y Year) Known() bool {
	return y != 0
}

// String renders the year, or an empty string when unknown.
func (y Year) String() string {
	if !y.Known() {
		return ""
	}
	return strconv.Itoa(int(y))
}

// Publication is one entry in the publication database.
type Publication struct {
	// Title is the publication title as it appeared in the source.
	Title string `json:"title" yaml:"title"`

	// Authors lists the authors in source order.
	Authors AuthorList `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Year is the publication year; zero when unknown.
	Year Year `json:"year,omitempty" yaml:"year,omitempty"`

	// Venue is the journal, conference, or outlet name.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// Citations is the citation count reported by the source.
	Citations int `json:"citations,omitempty" yaml:"citations,omitempty"`

	// Source records where this entry came from.
	Source Source `json:"source,omitempty" yaml:"source,omitempty"`

	// FullText preserves the raw CV line for cv-sourced records.
	FullText string `json:"full_text,omitempty" yaml:"full_text,omitempty"`
}

// AuthorInfo is the profile header stored alongside the publications.
type AuthorInfo struct {
	Name        string   `json:"name" yaml:"name"`
	Affiliation string   `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`
	Interests   []string `json:"interests,omitempty" yaml:"interests,omitempty"`
	CitedBy     int      `json:"citedby" yaml:"citedby"`
	HIndex      int      `json:"hindex" yaml:"hindex"`
	I10Index    int      `json:"i10index" yaml:"i10index"`
	URL         string   `json:"url,omitempty" yaml:"url,omitempty"`
}

// Store is the persisted publication database: an ordered publication
// sequence plus the author header. It is read once at merge start and
// written back whole; candidate batches use the same document shape.
type Store struct {
	AuthorInfo        *AuthorInfo   `json:"author_info,omitempty" yaml:"author_info,omitempty"`
	Publications      []Publication `json:"publications" yaml:"publications"`
	LastUpdated       string        `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`
	TotalPublications int           `json:"total_publications,omitempty" yaml:"total_publications,omitempty"`
	FetchedAt         string        `json:"fetched_at,omitempty" yaml:"fetched_at,omitempty"`
	ImportSource      string        `json:"import_source,omitempty" yaml:"import_source,omitempty"`
}
