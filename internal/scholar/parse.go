// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar produces candidate publication batches from Google
// Scholar: either by parsing text an operator copied off their profile
// page, or by fetching and scraping the public profile directly.
package scholar

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/scholarops/pubsync/pkg/types"
)

var (
	blockSep = regexp.MustCompile(`\n\s*\n`)
	yearRe   = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	citedRe  = regexp.MustCompile(`Cited by (\d+)`)
)

// ParseManual parses publications from text copied off a Scholar
// profile page. Entries are blank-line-separated blocks:
//
//	Title of paper
//	Author1, Author2, Author3
//	Conference/Journal, Year
//	Cited by X
//
// The venue and cited-by lines are optional. Blocks with fewer than
// two lines are skipped; they carry too little to dedup against.
func ParseManual(r io.Reader) ([]types.Publication, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading scholar text: %w", err)
	}

	var pubs []types.Publication
	for _, entry := range blockSep.Split(string(content), -1) {
		var lines []string
		for _, line := range strings.Split(entry, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) < 2 {
			continue
		}

		pub := types.Publication{
			Title:   lines[0],
			Authors: splitAuthors(lines[1]),
			Source:  types.SourceScholarManual,
		}

		if len(lines) > 2 && !citedRe.MatchString(lines[2]) {
			venueLine := lines[2]
			if year := yearRe.FindString(venueLine); year != "" {
				y, _ := strconv.Atoi(year)
				pub.Year = types.Year(y)
				venueLine = strings.Trim(strings.ReplaceAll(venueLine, year, ""), ", ")
			}
			pub.Venue = venueLine
		}

		for _, line := range lines {
			if m := citedRe.FindStringSubmatch(line); m != nil {
				pub.Citations, _ = strconv.Atoi(m[1])
				break
			}
		}

		pubs = append(pubs, pub)
	}
	return pubs, nil
}

// ImportFile parses a copied-text file into a candidate batch suitable
// for merging. The batch records where it came from so a later audit
// can trace a record back to its paste.
func ImportFile(path string) (*types.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scholar text %s: %w", path, err)
	}
	defer f.Close()

	pubs, err := ParseManual(f)
	if err != nil {
		return nil, err
	}
	return &types.Store{
		Publications:      pubs,
		TotalPublications: len(pubs),
		FetchedAt:         "Manually imported",
		ImportSource:      path,
	}, nil
}

// splitAuthors turns a comma-separated author line into a list.
func splitAuthors(line string) types.AuthorList {
	parts := strings.Split(line, ",")
	authors := make(types.AuthorList, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			authors = append(authors, p)
		}
	}
	return authors
}
