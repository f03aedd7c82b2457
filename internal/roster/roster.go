// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package roster reads the researcher roster from a CSV file.
package roster

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/Doggel/orcid-fetcher/pkg/types"
)

const (
	nameColumn  = "Name"
	orcidColumn = "ORCID"
)

// Read loads the roster from a CSV file with a header row. The Name and
// ORCID columns are both required; a missing column or an unreadable file
// is a configuration error and nothing is fetched. Additional columns are
// ignored and cell values are trimmed.
func Read(path string) ([]types.RosterRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening roster %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Rows may be ragged; missing trailing cells read as empty.
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading roster %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("roster %s is empty: expected a header row with %q and %q columns",
			path, nameColumn, orcidColumn)
	}

	nameIdx, orcidIdx := -1, -1
	for i, col := range records[0] {
		switch strings.TrimSpace(col) {
		case nameColumn:
			if nameIdx < 0 {
				nameIdx = i
			}
		case orcidColumn:
			if orcidIdx < 0 {
				orcidIdx = i
			}
		}
	}
	if nameIdx < 0 || orcidIdx < 0 {
		return nil, fmt.Errorf("roster %s must include %q and %q columns", path, nameColumn, orcidColumn)
	}

	rows := make([]types.RosterRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, types.RosterRow{
			Name:  cell(rec, nameIdx),
			ORCID: cell(rec, orcidIdx),
		})
	}
	return rows, nil
}

// cell returns the trimmed value at idx, or "" when the row is short.
func cell(rec []string, idx int) string {
	if idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}
