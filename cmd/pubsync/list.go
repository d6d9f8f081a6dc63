// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/scholarops/pubsync/internal/render"
	"github.com/scholarops/pubsync/internal/store"
	"github.com/scholarops/pubsync/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Render the publications list as a text document",
	Long: `List renders the store as a numbered plain-text publications list,
newest first, with an author-metrics header. Writes to stdout unless
--output names a file.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().String("output", "", "write the list to a file instead of stdout")
	listCmd.Flags().Bool("include-citations", false, "include citation counts per entry")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	st, err := store.Load(storePath(cmd))
	if err != nil {
		return fmt.Errorf("loading store: %w", err)
	}

	includeCitations, _ := cmd.Flags().GetBool("include-citations")
	cfg := types.RenderConfig{IncludeCitations: includeCitations}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		render.WriteList(os.Stdout, st, cfg, time.Now())
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating list file: %w", err)
	}
	defer f.Close()
	render.WriteList(f, st, cfg, time.Now())
	fmt.Printf("Publications list written to %s\n", output)
	return nil
}
