// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scholarops/pubsync/internal/scholar"
	"github.com/scholarops/pubsync/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import [text-file]",
	Short: "Import publications pasted from a Scholar profile",
	Long: `Import parses a text file holding publications copied off a Google
Scholar profile page (blank-line-separated blocks of title, authors,
venue/year, and an optional "Cited by N" line) and writes them as a
candidate batch file. Merge the batch with 'pubsync merge'.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("output", "data/scholar_manual.json", "candidate batch output path")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")

	batch, err := scholar.ImportFile(args[0])
	if err != nil {
		return err
	}
	if len(batch.Publications) == 0 {
		return fmt.Errorf("no publications found in %s", args[0])
	}

	if err := store.Save(output, batch); err != nil {
		return err
	}
	fmt.Printf("Imported %d publication(s) from %s\n", len(batch.Publications), args[0])
	fmt.Printf("Saved to %s\n", output)
	fmt.Printf("Merge with: pubsync merge %s\n", output)
	return nil
}
