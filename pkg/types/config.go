package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout (default 10s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "orcid-fetcher/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the ORCID works fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL overrides the ORCID Public API root. Empty means the
	// production endpoint.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// ContactEmail, when set, is appended to the User-Agent so the ORCID
	// registry can identify the operator. No authentication is involved.
	ContactEmail string `json:"contact_email,omitempty" yaml:"contact_email,omitempty"`

	// RowDelay is the blocking courtesy delay between consecutive
	// per-researcher fetches (default 500ms). A fixed pause, not an
	// adaptive backoff.
	RowDelay time.Duration `json:"row_delay" yaml:"row_delay"`
}

// ExportFormat selects the output table format.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatYAML ExportFormat = "yaml"
	FormatJSON ExportFormat = "json"
)

// ExportConfig holds settings for the export stage.
type ExportConfig struct {
	// Path is the output file the works table is written to.
	Path string `json:"path" yaml:"path"`

	// Format selects the output format: csv, yaml, or json.
	Format ExportFormat `json:"format" yaml:"format"`
}

// ArchiveConfig holds settings for the optional run archive.
type ArchiveConfig struct {
	// DBPath is the SQLite database file. Empty disables archiving.
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}
