package app

import "sf-metadata-coverage/internal/types"

type CheckRequest struct {
	SourceDirs   []string
	ManifestPath string
	Metadata     []string
	ProjectDir   string
	APIVersion   string
	Channels     []types.Channel
	OutputDir    string
}

type CheckResult struct {
	APIVersion string
	Major      int
	Components []types.MetadataComponent
	Result     types.ValidationResult
	Hints      []string
}

type DownloadRequest struct {
	ProjectDir string
	APIVersion string
}

type DownloadResult struct {
	Major     int
	Versions  types.ReportVersions
	TypeCount int
}

type PrefetchRequest struct {
	Count int
}

// PrefetchOutcome is the result for one release.  Err is nil on success.
type PrefetchOutcome struct {
	Release   types.Release
	Major     int
	TypeCount int
	Err       error
}

type PrefetchResult struct {
	Outcomes []PrefetchOutcome
}

type ListResult struct {
	Reports []types.CachedReport
}

type ExplainRequest struct {
	TypeName   string
	ProjectDir string
	APIVersion string
}

type ExplainResult struct {
	APIVersion string             `json:"apiVersion"`
	Key        string             `json:"type"`
	Found      bool               `json:"found"`
	Coverage   types.TypeCoverage `json:"coverage"`
}
