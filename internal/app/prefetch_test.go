package app

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sf-metadata-coverage/internal/types"
)

func releaseList() []types.Release {
	return []types.Release{
		{Label: "Spring '24", Version: "60.0"},
		{Label: "Summer '24", Version: "61.0"},
		{Label: "Winter '25", Version: "62.0"},
		{Label: "Spring '25", Version: "63.0"},
		{Label: "Summer '25", Version: "64.0"},
	}
}

func TestPrefetchStoresLatestReleases(t *testing.T) {
	fetcher := &fakeFetcher{reports: map[int]types.CoverageReport{
		63: coverageReport(63),
		64: coverageReport(64),
	}}
	service, _ := newTestService(t, fetcher)
	service.Releases = fakeReleases{releases: releaseList()}

	result, err := service.Prefetch(t.Context(), PrefetchRequest{Count: 2})
	require.NoError(t, err)
	assert.Equal(t, []int{63, 64}, fetcher.calls)
	require.Len(t, result.Outcomes, 2)
	for _, outcome := range result.Outcomes {
		assert.NoError(t, outcome.Err)
		assert.Equal(t, 4, outcome.TypeCount)
	}

	listed, err := service.List()
	require.NoError(t, err)
	require.Len(t, listed.Reports, 2)
	assert.Equal(t, 63, listed.Reports[0].Major)
}

func TestPrefetchContinuesAfterFailure(t *testing.T) {
	fetcher := &fakeFetcher{reports: map[int]types.CoverageReport{
		60: coverageReport(60),
		61: coverageReport(61),
		63: coverageReport(63),
		64: coverageReport(64),
	}}
	service, _ := newTestService(t, fetcher)
	service.Releases = fakeReleases{releases: releaseList()}

	result, err := service.Prefetch(t.Context(), PrefetchRequest{})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "1 of 5 versions failed")
	assert.Equal(t, []int{60, 61, 62, 63, 64}, fetcher.calls)
	require.Len(t, result.Outcomes, 5)
	assert.Error(t, result.Outcomes[2].Err)

	listed, err := service.List()
	require.NoError(t, err)
	assert.Len(t, listed.Reports, 4)
}

func TestPrefetchEmptyReleaseList(t *testing.T) {
	service, _ := newTestService(t, &fakeFetcher{})
	service.Releases = fakeReleases{releases: []types.Release{{Label: "bogus", Version: "not-a-version"}}}

	_, err := service.Prefetch(t.Context(), PrefetchRequest{})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}
