// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/scholarops/pubsync/internal/scholar"
	"github.com/scholarops/pubsync/internal/secrets"
	"github.com/scholarops/pubsync/internal/store"
	"github.com/scholarops/pubsync/pkg/types"
)

const defaultFetchTimeout = 30 * time.Second

var fetchCmd = &cobra.Command{
	Use:   "fetch [scholar-id]",
	Short: "Fetch a Google Scholar profile into a candidate batch",
	Long: `Fetch downloads the public Scholar profile page for the given user ID
and extracts the author block (name, affiliation, metrics, interests)
and publication rows into a candidate batch file. Merge the batch with
'pubsync merge'.

Scholar throttles scrapers; a session cookie in .secrets/scholar-cookie
raises the ceiling. Throttled responses are retried with backoff.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	fetchCmd.Flags().Int("max", 0, "maximum publications to keep (0 = all)")
	fetchCmd.Flags().String("output", "data/scholar_fetched.json", "candidate batch output path")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultFetchTimeout
	}
	maxPubs, _ := cmd.Flags().GetInt("max")
	output, _ := cmd.Flags().GetString("output")

	cfg := types.FetchConfig{
		HTTPConfig:      types.HTTPConfig{Timeout: timeout},
		MaxPublications: maxPubs,
		Cookie:          loadedSecrets[secrets.ScholarCookie],
	}
	client := &http.Client{Timeout: cfg.Timeout}

	fetcher := scholar.NewFetcher(client, cfg)
	batch, err := fetcher.FetchProfile(context.Background(), args[0], os.Stdout)
	if err != nil {
		return err
	}

	if err := store.Save(output, batch); err != nil {
		return err
	}
	fmt.Printf("\nSaved %d publication(s) to %s\n", len(batch.Publications), output)
	fmt.Printf("Merge with: pubsync merge %s\n", output)
	return nil
}
