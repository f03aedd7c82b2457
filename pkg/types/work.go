// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the orcid-fetcher pipeline.
package types

// NotAvailable is the sentinel written for content fields with no usable
// value. Every exported work carries either a real value or this literal;
// the publication date is the one field that may instead be empty.
const NotAvailable = "N/A"

// Work represents one normalized publication from a researcher's public
// ORCID record.
type Work struct {
	// Title is the work title, or "N/A" when the record carries none.
	Title string `json:"title" yaml:"title"`

	// PublicationDate is the ISO date (YYYY-MM-DD). It is empty when the
	// record has no publication year, even if a month or day is present.
	PublicationDate string `json:"publication_date,omitempty" yaml:"publication_date,omitempty"`

	// Journal is the journal title when present, otherwise the name of the
	// first source that asserted the work, otherwise "N/A".
	Journal string `json:"journal" yaml:"journal"`

	// DOI is the value of the first external identifier of type "doi",
	// or "N/A" when the record has none.
	DOI string `json:"doi" yaml:"doi"`

	// OwnerName and OwnerORCID identify the roster row the work was
	// fetched for. They are attached by the batch runner, not by
	// extraction.
	OwnerName  string `json:"owner_name,omitempty" yaml:"owner_name,omitempty"`
	OwnerORCID string `json:"owner_orcid,omitempty" yaml:"owner_orcid,omitempty"`
}

// RosterRow is one input row: a researcher's display name and ORCID iD.
// Rows whose ORCID cell is empty or a spreadsheet placeholder token are
// skipped by the batch runner.
type RosterRow struct {
	Name  string `json:"name" yaml:"name"`
	ORCID string `json:"orcid" yaml:"orcid"`
}
