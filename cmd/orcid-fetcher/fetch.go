package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Doggel/orcid-fetcher/internal/archive"
	"github.com/Doggel/orcid-fetcher/internal/batch"
	"github.com/Doggel/orcid-fetcher/internal/export"
	"github.com/Doggel/orcid-fetcher/internal/orcid"
	"github.com/Doggel/orcid-fetcher/internal/roster"
	"github.com/Doggel/orcid-fetcher/pkg/types"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultDelay     = 500 * time.Millisecond
	defaultUserAgent = "orcid-fetcher/0.1"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch works for every researcher in the roster and export them",
	Long: `Fetch reads a CSV roster with Name and ORCID columns, queries the ORCID
Public API for each researcher's public works, and writes the accumulated
table. Rows without a usable ORCID iD are skipped, and a failed fetch
contributes zero works without aborting the run. When no works accumulate,
no output file is written.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("input", "", "roster CSV file (columns: Name, ORCID)")
	fetchCmd.Flags().String("output", "", "output file for the works table")
	fetchCmd.Flags().String("format", "", "output format: csv, yaml, or json")
	fetchCmd.Flags().Duration("delay", 0, "courtesy delay between consecutive fetches (default 500ms)")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 10s)")
	fetchCmd.Flags().String("archive-db", "", "optional SQLite database to archive this run into")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	input := stringSetting(cmd, "input")
	output := stringSetting(cmd, "output")
	format := types.ExportFormat(stringSetting(cmd, "format"))
	delay := durationSetting(cmd, "delay", defaultDelay)
	timeout := durationSetting(cmd, "timeout", defaultTimeout)
	archiveDB := stringSetting(cmd, "archive-db")

	rows, err := roster.Read(input)
	if err != nil {
		return err
	}

	userAgent := viper.GetString("user_agent")
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: userAgent,
		},
		BaseURL:      viper.GetString("base_url"),
		ContactEmail: viper.GetString("contact_email"),
		RowDelay:     delay,
	}
	client := &orcid.Client{
		Client: &http.Client{Timeout: cfg.Timeout},
		Config: cfg,
	}

	startedAt := time.Now()
	result := batch.Run(context.Background(), client, rows, cfg.RowDelay, os.Stdout)

	exportCfg := types.ExportConfig{Path: output, Format: format}
	wrote, err := export.WriteTable(exportCfg, result.Works, os.Stdout)
	if err != nil || !wrote {
		return err
	}

	if archiveDB != "" {
		store, err := archive.NewStore(types.ArchiveConfig{DBPath: archiveDB})
		if err != nil {
			return err
		}
		defer store.Close()

		runID, err := store.SaveRun(context.Background(), startedAt, result.Works)
		if err != nil {
			return err
		}
		fmt.Printf("archived run %d in %s\n", runID, archiveDB)
	}
	return nil
}

// stringSetting returns the flag value when set, falling back to viper
// (config file or environment).
func stringSetting(cmd *cobra.Command, name string) string {
	if v, _ := cmd.Flags().GetString(name); v != "" {
		return v
	}
	return viper.GetString(viperKey(name))
}

// durationSetting returns the flag value when set, then the viper value,
// then the built-in default.
func durationSetting(cmd *cobra.Command, name string, fallback time.Duration) time.Duration {
	if v, _ := cmd.Flags().GetDuration(name); v != 0 {
		return v
	}
	if v := viper.GetDuration(viperKey(name)); v != 0 {
		return v
	}
	return fallback
}

func viperKey(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}
