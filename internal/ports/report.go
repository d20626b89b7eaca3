package ports

import (
	"context"

	"sf-metadata-coverage/internal/types"
)

// ReportStorePort persists coverage reports keyed by major API version.
type ReportStorePort interface {
	// Load returns the stored report for major.  A missing report fails
	// with errbuilder.CodeNotFound; unreadable content fails with any
	// other code.  Load never touches the network.
	Load(major int) (types.CoverageReport, error)

	// Store persists report under report.Versions.Selected, replacing any
	// earlier copy.
	Store(report types.CoverageReport) error

	// List describes every stored report, ordered by major version.
	List() ([]types.CachedReport, error)

	// Close releases any handle the store holds.
	Close() error
}

// ReportFetcherPort downloads a coverage report.  One attempt per call.
type ReportFetcherPort interface {
	Fetch(ctx context.Context, major int) (types.CoverageReport, error)
}

// ReleaseSourcePort lists platform releases, oldest first.
type ReleaseSourcePort interface {
	Releases(ctx context.Context) ([]types.Release, error)
}
