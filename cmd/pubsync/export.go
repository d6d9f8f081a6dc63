// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/scholarops/pubsync/internal/render"
	"github.com/scholarops/pubsync/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the store as YAML, JSON, or CSL-YAML",
	Long: `Export writes the publication store in a machine-readable format.
The csl format emits a CSL-YAML bibliography consumable by Pandoc and
reference managers.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("format", "yaml", "export format: yaml, json, or csl")
	exportCmd.Flags().String("output", "", "write to a file instead of stdout")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	st, err := store.Load(storePath(cmd))
	if err != nil {
		return fmt.Errorf("loading store: %w", err)
	}

	var w io.Writer = os.Stdout
	output, _ := cmd.Flags().GetString("output")
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "yaml", "":
		err = render.ExportYAML(w, st)
	case "json":
		err = render.ExportJSON(w, st)
	case "csl":
		err = render.ExportCSL(w, st.Publications)
	default:
		return fmt.Errorf("unsupported format %q: use yaml, json, or csl", format)
	}
	if err != nil {
		return err
	}

	if output != "" {
		fmt.Printf("Exported to %s\n", output)
	}
	return nil
}
