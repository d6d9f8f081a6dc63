// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/scholarops/pubsync/pkg/types"
)

// QueryOptions holds parameters for index queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over title, authors
	// and venue. Empty means filter-only.
	Query string

	// Year filters to an exact publication year (0 = no filter).
	Year int

	// Source filters by record provenance.
	Source types.Source

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Year == 0 && q.Source == ""
}

// Result is a publication with its FTS relevance rank. Rank is 0 for
// filter-only queries.
type Result struct {
	types.Publication
	Rank float64 `json:"rank" yaml:"rank"`
}

// Search queries the index. Full-text queries are ranked by relevance;
// filter-only queries come back newest year first, then by title.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]Result, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT p.title, p.authors, p.year, p.venue, p.citations, p.source, pubs_fts.rank
			FROM pubs_fts
			JOIN publications p ON p.rowid = pubs_fts.rowid
			WHERE pubs_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT p.title, p.authors, p.year, p.venue, p.citations, p.source, 0 AS rank
			FROM publications p
			WHERE 1=1`)
	}

	if opts.Year != 0 {
		qb.WriteString(` AND p.year = ?`)
		args = append(args, opts.Year)
	}
	if opts.Source != "" {
		qb.WriteString(` AND p.source = ?`)
		args = append(args, string(opts.Source))
	}

	if useFTS {
		qb.WriteString(` ORDER BY pubs_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY p.year DESC, p.title`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var (
			r       Result
			authors sql.NullString
			year    int
			source  string
		)
		if err := rows.Scan(&r.Title, &authors, &year, &r.Venue, &r.Citations, &source, &r.Rank); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if authors.Valid && authors.String != "" {
			r.Authors = splitAuthorLine(authors.String)
		}
		r.Year = types.Year(year)
		r.Source = types.Source(source)
		results = append(results, r)
	}

	return results, rows.Err()
}

func splitAuthorLine(line string) types.AuthorList {
	parts := strings.Split(line, ",")
	authors := make(types.AuthorList, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			authors = append(authors, p)
		}
	}
	return authors
}
