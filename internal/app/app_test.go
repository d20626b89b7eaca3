package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/require"

	"sf-metadata-coverage/internal/adapters"
	"sf-metadata-coverage/internal/types"
)

type fakeFetcher struct {
	reports map[int]types.CoverageReport
	errs    map[int]error
	calls   []int
}

func (f *fakeFetcher) Fetch(_ context.Context, major int) (types.CoverageReport, error) {
	f.calls = append(f.calls, major)
	if err, ok := f.errs[major]; ok {
		return types.CoverageReport{}, err
	}
	report, ok := f.reports[major]
	if !ok {
		return types.CoverageReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed downloading metadata coverage report")
	}
	return report, nil
}

type fakeReleases struct {
	releases []types.Release
	err      error
}

func (f fakeReleases) Releases(context.Context) ([]types.Release, error) {
	return f.releases, f.err
}

func coverageReport(major int) types.CoverageReport {
	return types.CoverageReport{
		Versions: types.ReportVersions{Selected: major, Min: major - 1, Max: major + 1},
		Types: map[string]types.TypeCoverage{
			"ApexClass":       {Channels: types.Channels{MetadataAPI: true, SourceTracking: true}},
			"CustomLabels":    {Channels: types.Channels{MetadataAPI: true}},
			"AccountSettings": {Channels: types.Channels{MetadataAPI: true}},
			"CaseSettings":    {Channels: types.Channels{}},
		},
	}
}

// newTestService wires real local adapters around a fake network.
func newTestService(t *testing.T, fetcher *fakeFetcher) (Service, string) {
	t.Helper()
	cacheDir := filepath.Join(t.TempDir(), "cache")
	service, err := NewService(Config{CacheDir: cacheDir})
	require.NoError(t, err)
	service.Fetcher = fetcher
	return service, cacheDir
}

func writeProject(t *testing.T, sourceAPIVersion string) string {
	t.Helper()
	root := t.TempDir()
	content := `{"packageDirectories":[{"path":"force-app","default":true}],"sourceApiVersion":"` + sourceAPIVersion + `"}`
	require.NoError(t, os.WriteFile(filepath.Join(root, adapters.ProjectFileName), []byte(content), 0644))
	classes := filepath.Join(root, "force-app", "main", "default", "classes")
	require.NoError(t, os.MkdirAll(classes, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(classes, "Foo.cls-meta.xml"), []byte("<ApexClass/>"), 0644))
	return root
}
