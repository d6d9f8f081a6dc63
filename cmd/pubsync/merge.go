// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scholarops/pubsync/internal/merge"
	"github.com/scholarops/pubsync/internal/store"
	"github.com/scholarops/pubsync/pkg/types"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [batch.json]",
	Short: "Merge a candidate batch into the publication store",
	Long: `Merge classifies each candidate in the batch against the store:
near-exact title matches are skipped as duplicates, borderline matches
are shown for review, and the rest are appended. The store is backed up
to a timestamped snapshot before any change is written.

By default merge prompts on stdin. Use --yes for non-interactive runs;
potential duplicates are then declined unless --accept-potential is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().Float64("dup-threshold", 0, "similarity at or above which a candidate is a duplicate (default 0.85)")
	mergeCmd.Flags().Float64("review-threshold", 0, "lower bound of the review band (default 0.65)")
	mergeCmd.Flags().Bool("yes", false, "skip prompts and proceed")
	mergeCmd.Flags().Bool("accept-potential", false, "with --yes, add potential duplicates instead of skipping them")
	mergeCmd.Flags().Bool("init", false, "create the store from the batch when it does not exist yet")

	rootCmd.AddCommand(mergeCmd)
}

func mergeConfigFromFlags(cmd *cobra.Command) types.MergeConfig {
	cfg := types.DefaultMergeConfig()
	if v := viper.GetFloat64("merge.dup_threshold"); v > 0 {
		cfg.DupThreshold = v
	}
	if v := viper.GetFloat64("merge.review_threshold"); v > 0 {
		cfg.ReviewThreshold = v
	}
	if v, _ := cmd.Flags().GetFloat64("dup-threshold"); v > 0 {
		cfg.DupThreshold = v
	}
	if v, _ := cmd.Flags().GetFloat64("review-threshold"); v > 0 {
		cfg.ReviewThreshold = v
	}
	if q := viper.GetStringSlice("merge.title_qualifiers"); len(q) > 0 {
		cfg.TitleQualifiers = q
	}
	return cfg
}

func runMerge(cmd *cobra.Command, args []string) error {
	batch, err := store.Load(args[0])
	if err != nil {
		return fmt.Errorf("loading batch: %w", err)
	}

	path := storePath(cmd)
	yes, _ := cmd.Flags().GetBool("yes")
	acceptPotential, _ := cmd.Flags().GetBool("accept-potential")
	initStore, _ := cmd.Flags().GetBool("init")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if !initStore {
			return fmt.Errorf("store %s does not exist; pass --init to create it from the batch", path)
		}
		if err := store.Save(path, batch); err != nil {
			return err
		}
		fmt.Printf("Initialized %s with %d publication(s).\n", path, len(batch.Publications))
		return nil
	}

	var decider merge.Decider
	if yes {
		decider = merge.Scripted(acceptPotential)
	} else {
		decider = merge.Interactive{In: os.Stdin, Out: os.Stdout}
	}

	opts := merge.Options{
		StorePath: path,
		Config:    mergeConfigFromFlags(cmd),
		Decider:   decider,
	}
	_, err = merge.Run(opts, batch, os.Stdout)
	return err
}
