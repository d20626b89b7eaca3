package types

// CoverageReport is one versioned snapshot of the metadata coverage report.
// Types keys use the report's naming convention (e.g. "CustomLabels"), so
// lookups must go through the type normalizer.
type CoverageReport struct {
	Types    map[string]TypeCoverage `json:"types"`
	Versions ReportVersions          `json:"versions"`
}

// ReportVersions describes which major API version the report represents
// and the range the service can serve.
type ReportVersions struct {
	Selected int `json:"selected"`
	Min      int `json:"min"`
	Max      int `json:"max"`
}

// TypeCoverage is the report entry for a single metadata type.
type TypeCoverage struct {
	Channels    Channels     `json:"channels"`
	Details     []Detail     `json:"details,omitempty"`
	KnownIssues []KnownIssue `json:"knownIssues,omitempty"`
}

type Detail struct {
	URL            *string `json:"url,omitempty"`
	Name           string  `json:"name"`
	DetailText     *string `json:"detailText,omitempty"`
	DetailRichText *string `json:"detailRichText,omitempty"`
}

type KnownIssue struct {
	URL           string  `json:"url"`
	LastUpdated   string  `json:"lastUpdated"`
	AffectedUsers int     `json:"affectedUsers"`
	Tags          *string `json:"tags,omitempty"`
	Status        string  `json:"status"`
	Summary       string  `json:"summary"`
	Title         string  `json:"title"`
}

// CachedReport describes a report held by a report store.
type CachedReport struct {
	Major     int            `json:"major"`
	Versions  ReportVersions `json:"versions"`
	TypeCount int            `json:"typeCount"`
	SizeBytes int64          `json:"sizeBytes"`
	StoredAt  string         `json:"storedAt"`
	Digest    string         `json:"digest"`
	DigestOK  bool           `json:"digestOk"`
	Location  string         `json:"location"`
}
