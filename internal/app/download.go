package app

import (
	"context"

	"sf-metadata-coverage/internal/core"
)

// Download fetches and stores the report for the resolved API version,
// bypassing the local cache.
func (s Service) Download(ctx context.Context, req DownloadRequest) (DownloadResult, error) {
	project, err := s.loadProject(ctx, req.ProjectDir)
	if err != nil {
		return DownloadResult{}, err
	}
	apiVersion, err := core.ResolveAPIVersion(ctx, core.APIVersionSources{
		Explicit: req.APIVersion,
		Project:  project.SourceAPIVersion,
	})
	if err != nil {
		return DownloadResult{}, err
	}
	major, err := core.MajorVersion(apiVersion)
	if err != nil {
		return DownloadResult{}, err
	}
	report, err := s.fetchAndStore(ctx, major)
	if err != nil {
		return DownloadResult{}, err
	}
	return DownloadResult{
		Major:     major,
		Versions:  report.Versions,
		TypeCount: len(report.Types),
	}, nil
}
