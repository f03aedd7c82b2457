// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package orcid

import "github.com/Doggel/orcid-fetcher/pkg/types"

// ORCID Public API v3.0 works-listing JSON structures. Nearly every field
// is optional and scalar values arrive wrapped in {"value": ...} objects,
// so optional substructures are pointers and absence decodes to nil.
type worksResponse struct {
	Group []workGroup `json:"group"`
}

// workGroup represents one distinct work. A group may carry several
// summaries (one per asserting source); only the first is read.
type workGroup struct {
	WorkSummary []workSummary `json:"work-summary"`
}

type workSummary struct {
	Title           *titleField      `json:"title"`
	PublicationDate *publicationDate `json:"publication-date"`
	JournalTitle    *valueField      `json:"journal-title"`
	Source          []workSource     `json:"source"`
	ExternalIDs     *externalIDs     `json:"external-ids"`
}

type titleField struct {
	Title *valueField `json:"title"`
}

type valueField struct {
	Value string `json:"value"`
}

type publicationDate struct {
	Year  *valueField `json:"year"`
	Month *valueField `json:"month"`
	Day   *valueField `json:"day"`
}

type externalIDs struct {
	ExternalID []externalID `json:"external-id"`
}

type externalID struct {
	Type  string `json:"external-id-type"`
	Value string `json:"external-id-value"`
}

type workSource struct {
	SourceName *valueField `json:"source-name"`
}

// extractWorks flattens a works listing into normalized records, one per
// group. A document without a group key yields an empty slice. Extraction
// never fails: every missing or partial field degrades to its documented
// default.
func extractWorks(doc worksResponse) []types.Work {
	var works []types.Work
	for _, g := range doc.Group {
		var summary workSummary
		if len(g.WorkSummary) > 0 {
			summary = g.WorkSummary[0]
		}
		works = append(works, normalizeSummary(summary))
	}
	return works
}

// normalizeSummary applies the per-field fallback rules to one summary.
func normalizeSummary(s workSummary) types.Work {
	w := types.Work{
		Title:   types.NotAvailable,
		Journal: types.NotAvailable,
		DOI:     types.NotAvailable,
	}

	if s.Title != nil && s.Title.Title != nil && s.Title.Title.Value != "" {
		w.Title = s.Title.Title.Value
	}

	w.PublicationDate = formatDate(s.PublicationDate)

	// A present journal-title object wins even when its value is empty;
	// the source-name fallback applies only when the object is absent.
	switch {
	case s.JournalTitle != nil:
		if s.JournalTitle.Value != "" {
			w.Journal = s.JournalTitle.Value
		}
	case len(s.Source) > 0:
		if name := fieldValue(s.Source[0].SourceName); name != "" {
			w.Journal = name
		}
	}

	if s.ExternalIDs != nil {
		for _, id := range s.ExternalIDs.ExternalID {
			if id.Type == "doi" {
				if id.Value != "" {
					w.DOI = id.Value
				}
				break
			}
		}
	}

	return w
}

// formatDate renders publication-date as YYYY-MM-DD. Month and day fall
// back to "01" when missing and are zero-padded to two digits. A missing
// or empty year suppresses the whole date rather than producing a partial
// one.
func formatDate(pd *publicationDate) string {
	if pd == nil {
		return ""
	}
	year := fieldValue(pd.Year)
	if year == "" {
		return ""
	}
	month := fieldValue(pd.Month)
	if month == "" {
		month = "01"
	}
	day := fieldValue(pd.Day)
	if day == "" {
		day = "01"
	}
	return year + "-" + pad2(month) + "-" + pad2(day)
}

func fieldValue(f *valueField) string {
	if f == nil {
		return ""
	}
	return f.Value
}

// pad2 left-pads a single-digit numeric string ("3" -> "03").
func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
