// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the orcid-fetcher CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the orcid-fetcher CLI.
var rootCmd = &cobra.Command{
	Use:   "orcid-fetcher",
	Short: "Fetch and export publication metadata for a roster of ORCID researchers",
	Long: `orcid-fetcher reads a roster of researchers (Name, ORCID columns), queries
the ORCID Public API for each researcher's works, normalizes title,
publication date, journal/source, and DOI with documented fallbacks, and
exports the accumulated table as CSV, YAML, or JSON.

Runs can optionally be archived into a local SQLite database for later
inspection via the archive subcommand.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./orcid-fetcher.yaml or ~/.config/orcid-fetcher/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("orcid-fetcher")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "orcid-fetcher"))
		}
	}

	viper.SetEnvPrefix("ORCID_FETCHER")
	viper.AutomaticEnv()

	viper.SetDefault("input", "orcid_list.csv")
	viper.SetDefault("output", "orcid_works.csv")
	viper.SetDefault("format", "csv")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
