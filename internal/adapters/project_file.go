package adapters

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"sf-metadata-coverage/internal/ports"
	"sf-metadata-coverage/internal/types"
)

const ProjectFileName = "sfdx-project.json"

type ProjectFileAdapter struct{}

func NewProjectFileAdapter() ProjectFileAdapter {
	return ProjectFileAdapter{}
}

// LoadProject reads sfdx-project.json from root.  Package directory paths
// are resolved against root.
func (a ProjectFileAdapter) LoadProject(root string) (types.ProjectConfig, error) {
	if strings.TrimSpace(root) == "" {
		root = "."
	}
	data, err := os.ReadFile(filepath.Join(root, ProjectFileName))
	if err != nil {
		return types.ProjectConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("project file not found").
			WithCause(err)
	}
	var project types.ProjectConfig
	if err := json.Unmarshal(data, &project); err != nil {
		return types.ProjectConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse " + ProjectFileName).
			WithCause(err)
	}
	project.Root = root
	project.SourceAPIVersion = strings.TrimSpace(project.SourceAPIVersion)
	dirs := project.PackageDirectories[:0]
	for _, dir := range project.PackageDirectories {
		path := strings.TrimSpace(dir.Path)
		if path == "" {
			continue
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		dir.Path = path
		dirs = append(dirs, dir)
	}
	project.PackageDirectories = dirs
	return project, nil
}

var _ ports.ProjectPort = ProjectFileAdapter{}
