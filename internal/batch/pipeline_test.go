// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Integration test: roster → fetch → batch → export pipeline, using a mock
// ORCID server and a real CSV roster on disk.

package batch

import (
	"bytes"
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Doggel/orcid-fetcher/internal/export"
	"github.com/Doggel/orcid-fetcher/internal/orcid"
	"github.com/Doggel/orcid-fetcher/internal/roster"
	"github.com/Doggel/orcid-fetcher/pkg/types"
)

const aliceWorksJSON = `{
  "group": [
    {
      "work-summary": [
        {
          "title": {"title": {"value": "Paper A"}},
          "publication-date": {"year": {"value": "2021"}},
          "source": [{"source-name": {"value": "Conf X"}}],
          "external-ids": {"external-id": [
            {"external-id-type": "doi", "external-id-value": "10.1/xyz"}
          ]}
        }
      ]
    }
  ]
}`

func TestPipelineRosterToCSV(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/0000-0001-1111-1111/works":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(aliceWorksJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	dir := t.TempDir()
	rosterPath := filepath.Join(dir, "roster.csv")
	require.NoError(t, os.WriteFile(rosterPath,
		[]byte("Name,ORCID\nAlice,0000-0001-1111-1111\nBob,\n"), 0o644))

	rows, err := roster.Read(rosterPath)
	require.NoError(t, err)

	client := &orcid.Client{
		Client: ts.Client(),
		Config: types.FetchConfig{BaseURL: ts.URL},
	}

	var out bytes.Buffer
	result := Run(context.Background(), client, rows, 0, &out)

	require.Len(t, result.Works, 1)
	assert.Equal(t, 1, result.Fetched)
	assert.Equal(t, 1, result.Skipped)

	outPath := filepath.Join(dir, "works.csv")
	require.NoError(t, export.WriteCSV(outPath, result.Works))

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2, "Bob must contribute no row")
	assert.Equal(t,
		[]string{"Alice", "0000-0001-1111-1111", "Paper A", "2021-01-01", "Conf X", "10.1/xyz"},
		records[1])
}

func TestPipelineFailedFetchIndistinguishableFromEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/0000-0001-1111-1111/works":
			http.Error(w, "boom", http.StatusInternalServerError)
		case "/0000-0002-2222-2222/works":
			w.Write([]byte(`{"group": []}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	client := &orcid.Client{
		Client: ts.Client(),
		Config: types.FetchConfig{BaseURL: ts.URL},
	}
	rows := []types.RosterRow{
		{Name: "Failing", ORCID: "0000-0001-1111-1111"},
		{Name: "Empty", ORCID: "0000-0002-2222-2222"},
	}

	var out bytes.Buffer
	result := Run(context.Background(), client, rows, 0, &out)

	// Both rows yield zero works; only the counters and log tell them apart.
	assert.Empty(t, result.Works)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Fetched)
	assert.Contains(t, out.String(), "fetch failed")
	assert.Contains(t, out.String(), "0 works found")
}
