package app

import (
	"context"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"sf-metadata-coverage/internal/core"
	"sf-metadata-coverage/internal/types"
)

// Check enumerates the requested components and validates them against the
// coverage report for the resolved API version.  Unsupported metadata is
// returned as data, never as an error.
func (s Service) Check(ctx context.Context, req CheckRequest) (CheckResult, error) {
	logger := log.Ctx(ctx)
	project, err := s.loadProject(ctx, req.ProjectDir)
	if err != nil {
		return CheckResult{}, err
	}
	componentReq := types.ComponentRequest{
		SourceDirs:   req.SourceDirs,
		ManifestPath: req.ManifestPath,
		Metadata:     req.Metadata,
	}
	for _, dir := range project.PackageDirectories {
		componentReq.PackageDirs = append(componentReq.PackageDirs, dir.Path)
	}
	set, err := s.Components.Build(ctx, componentReq)
	if err != nil {
		return CheckResult{}, err
	}
	apiVersion, err := core.ResolveAPIVersion(ctx, core.APIVersionSources{
		Explicit: req.APIVersion,
		Source:   set.SourceAPIVersion,
		Project:  project.SourceAPIVersion,
	})
	if err != nil {
		return CheckResult{}, err
	}
	major, err := core.MajorVersion(apiVersion)
	if err != nil {
		return CheckResult{}, err
	}
	if len(req.Channels) == 0 {
		logger.Warn().Msg("no coverage channels selected; only unknown metadata types can fail")
	}

	report, err := s.GetReport(ctx, major)
	if err != nil {
		return CheckResult{}, err
	}
	logger.Info().Msgf("Found %d metadata type(s) to check.", len(set.Components))

	result := s.Validator.Validate(set.Components, report, req.Channels)
	assert.NotEmpty(ctx, result.Message, "validation message must be set")

	if strings.TrimSpace(req.OutputDir) != "" {
		if err := s.writeResultFiles(req.OutputDir, apiVersion, req.Channels, set.Components, result); err != nil {
			return CheckResult{}, err
		}
	}
	return CheckResult{
		APIVersion: apiVersion,
		Major:      major,
		Components: set.Components,
		Result:     result,
		Hints:      checkDefaultsHints(req, project),
	}, nil
}

// loadProject reads sfdx-project.json; a missing file yields an empty
// project.
func (s Service) loadProject(ctx context.Context, dir string) (types.ProjectConfig, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	project, err := s.Project.LoadProject(dir)
	if err != nil {
		if errbuilder.CodeOf(err) == errbuilder.CodeNotFound {
			log.Ctx(ctx).Debug().Str("dir", dir).Msg("no project file found")
			return types.ProjectConfig{Root: dir}, nil
		}
		return types.ProjectConfig{}, err
	}
	return project, nil
}

func (s Service) writeResultFiles(dir string, apiVersion string, channels []types.Channel, components []types.MetadataComponent, result types.ValidationResult) error {
	writer := s.ResultWriter(dir)
	if err := writer.WriteResult(result); err != nil {
		return err
	}
	return writer.WriteSummary(Summarize(apiVersion, channels, components, result))
}

// Summarize condenses a validation result for the summary file.
func Summarize(apiVersion string, channels []types.Channel, components []types.MetadataComponent, result types.ValidationResult) types.ResultSummary {
	summary := types.ResultSummary{
		Success:          result.Success,
		Message:          result.Message,
		APIVersion:       apiVersion,
		Channels:         make([]string, 0, len(channels)),
		ComponentCount:   len(components),
		UnsupportedCount: len(result.Unsupported),
	}
	for _, channel := range channels {
		summary.Channels = append(summary.Channels, string(channel))
	}
	for _, entry := range result.Unsupported {
		if len(entry.Channels) == 0 {
			summary.MissingTypes = append(summary.MissingTypes, entry.Type)
		}
	}
	return summary
}
