package ports

import "sf-metadata-coverage/internal/types"

// ProjectPort reads the project configuration (sfdx-project.json).
type ProjectPort interface {
	LoadProject(root string) (types.ProjectConfig, error)
}
