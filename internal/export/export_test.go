// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/Doggel/orcid-fetcher/pkg/types"
)

var sampleWorks = []types.Work{
	{
		Title:           "Paper A",
		PublicationDate: "2021-01-01",
		Journal:         "Conf X",
		DOI:             "10.1/xyz",
		OwnerName:       "Alice",
		OwnerORCID:      "0000-0001-1111-1111",
	},
	{
		Title:      "Paper B",
		Journal:    "N/A",
		DOI:        "N/A",
		OwnerName:  "Bob",
		OwnerORCID: "0000-0002-2222-2222",
	},
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "works.csv")
	require.NoError(t, WriteCSV(path, sampleWorks))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Name", "ORCID", "Title", "Publication Date", "Journal/Source", "DOI"}, records[0])
	assert.Equal(t, []string{"Alice", "0000-0001-1111-1111", "Paper A", "2021-01-01", "Conf X", "10.1/xyz"}, records[1])
	// Absent date exports as an empty cell, not "N/A".
	assert.Equal(t, []string{"Bob", "0000-0002-2222-2222", "Paper B", "", "N/A", "N/A"}, records[2])
}

func TestWriteCSVBackfillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "works.csv")
	works := []types.Work{{OwnerName: "Carol", OwnerORCID: "0000-0003-3333-3333"}}
	require.NoError(t, WriteCSV(path, works))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Carol", "0000-0003-3333-3333", "N/A", "", "N/A", "N/A"}, records[1])
}

func TestWriteYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "works.yaml")
	require.NoError(t, WriteYAML(path, sampleWorks))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []Entry
	require.NoError(t, yaml.Unmarshal(data, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "Alice", entries[0].Name)
	assert.Equal(t, "2021-01-01", entries[0].PublicationDate)
	assert.Equal(t, "", entries[1].PublicationDate)
	assert.Equal(t, "N/A", entries[1].DOI)
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "works.json")
	require.NoError(t, WriteJSON(path, sampleWorks))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []Entry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "10.1/xyz", entries[0].DOI)
	assert.Equal(t, "Paper B", entries[1].Title)
}

func TestWriteDispatchesOnFormat(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "out.csv")
	require.NoError(t, Write(types.ExportConfig{Path: csvPath, Format: types.FormatCSV}, sampleWorks))
	assert.FileExists(t, csvPath)

	yamlPath := filepath.Join(dir, "out.yaml")
	require.NoError(t, Write(types.ExportConfig{Path: yamlPath, Format: types.FormatYAML}, sampleWorks))
	assert.FileExists(t, yamlPath)

	jsonPath := filepath.Join(dir, "out.json")
	require.NoError(t, Write(types.ExportConfig{Path: jsonPath, Format: types.FormatJSON}, sampleWorks))
	assert.FileExists(t, jsonPath)

	// Unknown format falls back to CSV.
	fallbackPath := filepath.Join(dir, "out.bin")
	require.NoError(t, Write(types.ExportConfig{Path: fallbackPath, Format: types.ExportFormat("parquet")}, sampleWorks))
	data, err := os.ReadFile(fallbackPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Publication Date")
}

func TestWriteTableEmptyResultWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "works.csv")

	var out bytes.Buffer
	wrote, err := WriteTable(types.ExportConfig{Path: path, Format: types.FormatCSV}, nil, &out)
	require.NoError(t, err)

	// The notice is the only effect: no file is created.
	assert.False(t, wrote)
	assert.Equal(t, "nothing to export\n", out.String())
	assert.NoFileExists(t, path)
}

func TestWriteTableWritesAndReports(t *testing.T) {
	path := filepath.Join(t.TempDir(), "works.csv")

	var out bytes.Buffer
	wrote, err := WriteTable(types.ExportConfig{Path: path, Format: types.FormatCSV}, sampleWorks, &out)
	require.NoError(t, err)

	assert.True(t, wrote)
	assert.Contains(t, out.String(), "exported 2 works to "+path)
	assert.FileExists(t, path)
}
