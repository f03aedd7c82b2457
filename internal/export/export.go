// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes the accumulated works table in the fixed output
// schema: Name, ORCID, Title, Publication Date, Journal/Source, DOI.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/Doggel/orcid-fetcher/pkg/types"
)

// header is the fixed output column order.
var header = []string{"Name", "ORCID", "Title", "Publication Date", "Journal/Source", "DOI"}

// Entry is the serialized form of one work for YAML and JSON export.
type Entry struct {
	Name            string `json:"name" yaml:"name"`
	ORCID           string `json:"orcid" yaml:"orcid"`
	Title           string `json:"title" yaml:"title"`
	PublicationDate string `json:"publication_date,omitempty" yaml:"publication_date,omitempty"`
	Journal         string `json:"journal" yaml:"journal"`
	DOI             string `json:"doi" yaml:"doi"`
}

// WriteTable writes the works table per cfg unless there are no works, in
// which case it prints a "nothing to export" notice to w and creates no
// file. It reports whether a file was written.
func WriteTable(cfg types.ExportConfig, works []types.Work, w io.Writer) (bool, error) {
	if len(works) == 0 {
		fmt.Fprintln(w, "nothing to export")
		return false, nil
	}
	if err := Write(cfg, works); err != nil {
		return false, err
	}
	fmt.Fprintf(w, "exported %d works to %s\n", len(works), cfg.Path)
	return true, nil
}

// Write writes the works table to cfg.Path in the configured format. An
// empty or unknown format falls back to CSV.
func Write(cfg types.ExportConfig, works []types.Work) error {
	switch cfg.Format {
	case types.FormatYAML:
		return WriteYAML(cfg.Path, works)
	case types.FormatJSON:
		return WriteJSON(cfg.Path, works)
	default:
		return WriteCSV(cfg.Path, works)
	}
}

// WriteCSV writes one row per work under the fixed header. Unpopulated
// title, journal, and DOI fields are backfilled with "N/A"; an absent
// publication date becomes an empty cell.
func WriteCSV(path string, works []types.Work) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	cw := csv.NewWriter(f)
	writeErr := cw.Write(header)
	for _, w := range works {
		if writeErr != nil {
			break
		}
		writeErr = cw.Write([]string{
			w.OwnerName,
			w.OwnerORCID,
			orNA(w.Title),
			w.PublicationDate,
			orNA(w.Journal),
			orNA(w.DOI),
		})
	}
	cw.Flush()
	if writeErr == nil {
		writeErr = cw.Error()
	}

	closeErr := f.Close()
	if writeErr != nil {
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing %s: %w", path, closeErr)
	}
	return nil
}

// WriteYAML writes the works table as a YAML list.
func WriteYAML(path string, works []types.Work) error {
	data, err := yaml.Marshal(toEntries(works))
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// WriteJSON writes the works table as indented JSON.
func WriteJSON(path string, works []types.Work) error {
	data, err := json.MarshalIndent(toEntries(works), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func toEntries(works []types.Work) []Entry {
	entries := make([]Entry, len(works))
	for i, w := range works {
		entries[i] = Entry{
			Name:            w.OwnerName,
			ORCID:           w.OwnerORCID,
			Title:           orNA(w.Title),
			PublicationDate: w.PublicationDate,
			Journal:         orNA(w.Journal),
			DOI:             orNA(w.DOI),
		}
	}
	return entries
}

func orNA(s string) string {
	if s == "" {
		return types.NotAvailable
	}
	return s
}
