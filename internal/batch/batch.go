// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch runs the per-researcher fetch loop and accumulates the
// flat works table.
package batch

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Doggel/orcid-fetcher/internal/orcid"
	"github.com/Doggel/orcid-fetcher/pkg/types"
)

// Fetcher fetches the normalized works listing for one ORCID iD.
type Fetcher interface {
	Works(ctx context.Context, id string) ([]types.Work, error)
}

// sleep implements the inter-row pause. Overridden in tests to avoid
// real wall-clock waits.
var sleep = time.Sleep

// Result holds the accumulated works and per-row counters for one run.
type Result struct {
	Works   []types.Work
	Fetched int
	Skipped int
	Failed  int
}

// Total returns the number of roster rows processed.
func (r Result) Total() int {
	return r.Fetched + r.Skipped + r.Failed
}

// Run processes roster rows strictly in input order, one at a time. Rows
// without a usable ORCID iD are skipped without producing output. A failed
// fetch is logged and contributes zero works; in the accumulated table it
// is indistinguishable from a researcher with no works, and the run always
// continues. Every fetched record is tagged with the row's name and ORCID
// iD. A fixed courtesy delay separates consecutive fetches; duplicate
// identifiers are refetched independently.
func Run(ctx context.Context, fetcher Fetcher, rows []types.RosterRow, delay time.Duration, w io.Writer) Result {
	var result Result
	fetched := false
	for _, row := range rows {
		if !orcid.ValidID(row.ORCID) {
			fmt.Fprintf(w, "skipping %s: no usable ORCID iD\n", row.Name)
			result.Skipped++
			continue
		}

		if fetched && delay > 0 {
			sleep(delay)
		}
		fetched = true

		fmt.Fprintf(w, "fetching works for %s (%s)\n", row.Name, row.ORCID)
		works, err := fetcher.Works(ctx, row.ORCID)
		if err != nil {
			fmt.Fprintf(w, "  warning: fetch failed for %s: %v\n", row.ORCID, err)
			result.Failed++
			continue
		}

		for _, work := range works {
			work.OwnerName = row.Name
			work.OwnerORCID = row.ORCID
			result.Works = append(result.Works, work)
		}
		fmt.Fprintf(w, "  %d works found\n", len(works))
		result.Fetched++
	}

	fmt.Fprintf(w, "\nBatch summary: %d fetched, %d skipped, %d failed (rows: %d), %d works\n",
		result.Fetched, result.Skipped, result.Failed, result.Total(), len(result.Works))
	return result
}
