package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Doggel/orcid-fetcher/internal/archive"
	"github.com/Doggel/orcid-fetcher/internal/export"
	"github.com/Doggel/orcid-fetcher/pkg/types"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Inspect the local works archive",
	Long: `Archive inspects the SQLite database written by fetch --archive-db.
Use subcommands to list recent runs or re-export an archived run.`,
}

var archiveRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recent archived runs",
	RunE:  runArchiveRecent,
}

var archiveExportCmd = &cobra.Command{
	Use:   "export [run-id]",
	Short: "Re-export an archived run to a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveExport,
}

func init() {
	archiveCmd.PersistentFlags().String("archive-db", "", "SQLite archive database")

	archiveRecentCmd.Flags().Int("limit", 10, "maximum number of runs to list")

	archiveExportCmd.Flags().String("output", "", "output file for the works table")
	archiveExportCmd.Flags().String("format", "", "output format: csv, yaml, or json")

	archiveCmd.AddCommand(archiveRecentCmd)
	archiveCmd.AddCommand(archiveExportCmd)
	rootCmd.AddCommand(archiveCmd)
}

func openArchive(cmd *cobra.Command) (*archive.Store, error) {
	dbPath := stringSetting(cmd, "archive-db")
	if dbPath == "" {
		return nil, fmt.Errorf("no archive database configured: set --archive-db or archive_db in the config file")
	}
	return archive.NewStore(types.ArchiveConfig{DBPath: dbPath})
}

func runArchiveRecent(cmd *cobra.Command, args []string) error {
	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.RecentRuns(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No archived runs.")
		return nil
	}

	fmt.Printf("%-6s  %-25s  %s\n", "Run", "Started", "Works")
	for _, r := range runs {
		fmt.Printf("%-6d  %-25s  %d\n", r.ID, r.StartedAt.Format(time.RFC3339), r.WorkCount)
	}
	return nil
}

func runArchiveExport(cmd *cobra.Command, args []string) error {
	var runID int64
	if _, err := fmt.Sscanf(args[0], "%d", &runID); err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	works, err := store.RunWorks(context.Background(), runID)
	if err != nil {
		return err
	}

	cfg := types.ExportConfig{
		Path:   stringSetting(cmd, "output"),
		Format: types.ExportFormat(stringSetting(cmd, "format")),
	}
	_, err = export.WriteTable(cfg, works, os.Stdout)
	return err
}
