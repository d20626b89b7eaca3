package app

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sf-metadata-coverage/internal/types"
)

func TestExplainKey(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "ApexClass", want: "ApexClass"},
		{input: "CustomLabel", want: "CustomLabels"},
		{input: " MatchingRule ", want: "MatchingRules"},
		{input: "Settings:Account", want: "AccountSettings"},
		{input: "Settings", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ExplainKey(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExplainSortsKnownIssues(t *testing.T) {
	report := coverageReport(64)
	report.Types["Flow"] = types.TypeCoverage{
		Channels: types.Channels{MetadataAPI: true},
		KnownIssues: []types.KnownIssue{
			{Title: "old", LastUpdated: "2024-01-10T08:00:00.000+0000"},
			{Title: "new", LastUpdated: "2025-03-01T08:00:00Z"},
			{Title: "undated"},
		},
	}
	fetcher := &fakeFetcher{reports: map[int]types.CoverageReport{64: report}}
	service, _ := newTestService(t, fetcher)

	result, err := service.Explain(t.Context(), ExplainRequest{TypeName: "Flow", ProjectDir: t.TempDir(), APIVersion: "64.0"})
	require.NoError(t, err)
	assert.True(t, result.Found)
	require.Len(t, result.Coverage.KnownIssues, 3)
	assert.Equal(t, "new", result.Coverage.KnownIssues[0].Title)
	assert.Equal(t, "old", result.Coverage.KnownIssues[1].Title)
	assert.Equal(t, "undated", result.Coverage.KnownIssues[2].Title)
}

func TestExplainUnknownType(t *testing.T) {
	fetcher := &fakeFetcher{reports: map[int]types.CoverageReport{64: coverageReport(64)}}
	service, _ := newTestService(t, fetcher)

	result, err := service.Explain(t.Context(), ExplainRequest{TypeName: "Settings:Opportunity", ProjectDir: t.TempDir(), APIVersion: "64.0"})
	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.Equal(t, "OpportunitySettings", result.Key)
}
