// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pubsync CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scholarops/pubsync/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// defaultStorePath is where the publication database lives unless the
// --store flag or config says otherwise.
const defaultStorePath = "data/publications.json"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the pubsync CLI.
var rootCmd = &cobra.Command{
	Use:   "pubsync",
	Short: "Personal academic publication database with a deduplicating merge engine",
	Long: `pubsync maintains a personal publication database: a JSON store of
publication records plus author metrics. Candidate batches come from a
Google Scholar profile (fetched or pasted) and are merged through a
similarity-based deduplicator with operator review of borderline cases.

Each operation is a subcommand: fetch, import, merge, compare, index,
search, list, and export.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pubsync.yaml or ~/.config/pubsync/config.yaml)")
	rootCmd.PersistentFlags().String("store", "", "publication store path (default: "+defaultStorePath+")")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pubsync")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pubsync"))
		}
	}

	viper.SetEnvPrefix("PUBSYNC")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// storePath resolves the publication store location: flag, then config,
// then the default.
func storePath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("store"); path != "" {
		return path
	}
	if path := viper.GetString("store_path"); path != "" {
		return path
	}
	return defaultStorePath
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
