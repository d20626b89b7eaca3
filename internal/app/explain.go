package app

import (
	"context"
	"sort"
	"strings"

	"sf-metadata-coverage/internal/core"
	"sf-metadata-coverage/internal/shared"
	"sf-metadata-coverage/internal/types"
)

// Explain looks up one type's report entry.  "Settings:Account" explains
// AccountSettings.  Known issues are ordered newest first.
func (s Service) Explain(ctx context.Context, req ExplainRequest) (ExplainResult, error) {
	key, err := ExplainKey(req.TypeName)
	if err != nil {
		return ExplainResult{}, err
	}
	project, err := s.loadProject(ctx, req.ProjectDir)
	if err != nil {
		return ExplainResult{}, err
	}
	apiVersion, err := core.ResolveAPIVersion(ctx, core.APIVersionSources{
		Explicit: req.APIVersion,
		Project:  project.SourceAPIVersion,
	})
	if err != nil {
		return ExplainResult{}, err
	}
	major, err := core.MajorVersion(apiVersion)
	if err != nil {
		return ExplainResult{}, err
	}
	report, err := s.GetReport(ctx, major)
	if err != nil {
		return ExplainResult{}, err
	}
	coverage, ok := report.Types[key]
	result := ExplainResult{APIVersion: apiVersion, Key: key, Found: ok}
	if !ok {
		return result, nil
	}
	coverage.KnownIssues = sortKnownIssues(coverage.KnownIssues)
	result.Coverage = coverage
	return result, nil
}

// ExplainKey maps a type argument to its report key.
func ExplainKey(typeName string) (string, error) {
	name := strings.TrimSpace(typeName)
	if name == "" {
		return "", errInvalid("metadata type is required")
	}
	head, member, hasMember := strings.Cut(name, ":")
	if core.IsSettingsType(head) {
		if !hasMember || strings.TrimSpace(member) == "" {
			return "", errInvalid("Settings needs a member, e.g. Settings:Account")
		}
		return core.SettingsTypeName(strings.TrimSpace(member)), nil
	}
	return core.NormalizeTypeName(head), nil
}

func sortKnownIssues(issues []types.KnownIssue) []types.KnownIssue {
	if len(issues) == 0 {
		return issues
	}
	ordered := append([]types.KnownIssue(nil), issues...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return shared.ParseTimeFlexible(ordered[i].LastUpdated).After(shared.ParseTimeFlexible(ordered[j].LastUpdated))
	})
	return ordered
}
