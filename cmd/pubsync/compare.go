// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/scholarops/pubsync/internal/compare"
	"github.com/scholarops/pubsync/internal/store"
)

var compareCmd = &cobra.Command{
	Use:   "compare [other.json]",
	Short: "Compare the store against another publication file",
	Long: `Compare reconciles the publication store with another store-format
file (for example a freshly fetched Scholar batch) without changing
either. The report lists matched pairs, borderline pairs needing
review, and the records present on only one side.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().String("output", "", "write the report to a file instead of stdout")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	path := storePath(cmd)
	left, err := store.Load(path)
	if err != nil {
		return fmt.Errorf("loading store: %w", err)
	}
	right, err := store.Load(args[0])
	if err != nil {
		return fmt.Errorf("loading comparison file: %w", err)
	}

	result := compare.Compare(mergeConfigFromFlags(cmd), left.Publications, right.Publications)

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		compare.WriteReport(os.Stdout, filepath.Base(path), filepath.Base(args[0]), result)
		return nil
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()
	compare.WriteReport(f, filepath.Base(path), filepath.Base(args[0]), result)
	fmt.Printf("Report written to %s\n", output)
	return nil
}
