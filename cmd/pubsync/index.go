// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scholarops/pubsync/internal/index"
	"github.com/scholarops/pubsync/internal/store"
	"github.com/scholarops/pubsync/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the search index from the publication store",
	Long: `Index rebuilds the SQLite full-text index from the store. The store
stays the source of truth; run this after a merge to pick up changes.`,
	RunE: runIndex,
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the publication index",
	Long: `Search queries the full-text index over titles, authors and venues,
optionally filtered by year and source. Full-text matches are ranked by
relevance; filter-only queries come back newest first.`,
	RunE: runSearch,
}

func init() {
	indexCmd.Flags().String("index-dir", "data/index", "directory holding the index database")

	searchCmd.Flags().String("index-dir", "data/index", "directory holding the index database")
	searchCmd.Flags().Int("year", 0, "filter by publication year")
	searchCmd.Flags().String("source", "", "filter by source: cv, scholar-manual, scholar-fetched")
	searchCmd.Flags().Int("limit", 0, "maximum results (0 = default 20)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(searchCmd)
}

func openIndex(cmd *cobra.Command) (*index.Store, error) {
	indexDir, _ := cmd.Flags().GetString("index-dir")
	return index.NewStore(types.IndexConfig{IndexDir: indexDir})
}

func runIndex(cmd *cobra.Command, args []string) error {
	st, err := store.Load(storePath(cmd))
	if err != nil {
		return fmt.Errorf("loading store: %w", err)
	}

	idx, err := openIndex(cmd)
	if err != nil {
		return err
	}
	defer idx.Close()

	if err := idx.Rebuild(context.Background(), st.Publications); err != nil {
		return err
	}
	fmt.Printf("Indexed %d publication(s).\n", len(st.Publications))
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	year, _ := cmd.Flags().GetInt("year")
	source, _ := cmd.Flags().GetString("source")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := index.QueryOptions{
		Query:      strings.Join(args, " "),
		Year:       year,
		Source:     types.Source(source),
		MaxResults: limit,
	}
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide search terms, --year, or --source")
	}

	idx, err := openIndex(cmd)
	if err != nil {
		return err
	}
	defer idx.Close()

	results, err := idx.Search(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(results, jsonOutput)
}

func formatSearchOutput(results []index.Result, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-50s  %-6s  %-30s  %s\n",
		"#", "Title", "Year", "Venue", "Cites")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for i, r := range results {
		fmt.Fprintf(os.Stdout, "%-4d  %-50s  %-6s  %-30s  %d\n",
			i+1, truncate(r.Title, 50), r.Year, truncate(r.Venue, 30), r.Citations)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// truncate shortens s to max characters, counting runes so multi-byte
// titles are never cut mid-character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
