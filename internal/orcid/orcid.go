// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package orcid fetches public works listings from the ORCID Public API
// and normalizes them into flat publication records.
package orcid

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Doggel/orcid-fetcher/pkg/types"
)

// worksBase is the ORCID Public API root used when FetchConfig.BaseURL
// is empty.
var worksBase = "https://pub.orcid.org/v3.0"

// Client fetches works listings for individual researchers.
type Client struct {
	Client *http.Client
	Config types.FetchConfig
}

// Works fetches the public works listing for one ORCID iD and returns
// normalized records. Transport failures and non-200 statuses are
// returned as errors; callers recover them as "zero works for this
// identifier" and continue.
func (c *Client) Works(ctx context.Context, id string) ([]types.Work, error) {
	base := c.Config.BaseURL
	if base == "" {
		base = worksBase
	}

	reqURL := fmt.Sprintf("%s/%s/works", base, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent())

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ORCID API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ORCID API returned HTTP %d for %s", resp.StatusCode, id)
	}

	var doc worksResponse
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing ORCID response: %w", err)
	}

	return extractWorks(doc), nil
}

// userAgent folds the optional contact e-mail into the User-Agent header
// so the registry can identify the operator.
func (c *Client) userAgent() string {
	ua := c.Config.UserAgent
	if ua == "" {
		ua = "orcid-fetcher/0.1"
	}
	if c.Config.ContactEmail != "" {
		ua = fmt.Sprintf("%s (%s)", ua, c.Config.ContactEmail)
	}
	return ua
}

// placeholderIDs are roster cell values that mean "no identifier".
// Spreadsheet exports commonly render empty cells as these tokens.
var placeholderIDs = map[string]bool{
	"":     true,
	"nan":  true,
	"none": true,
	"null": true,
}

// ValidID reports whether s is a usable ORCID iD rather than an
// empty-cell placeholder. The token comparison is case-insensitive.
func ValidID(s string) bool {
	return !placeholderIDs[strings.ToLower(strings.TrimSpace(s))]
}
