package ports

import (
	"context"

	"sf-metadata-coverage/internal/types"
)

// ComponentSourcePort enumerates metadata components from source
// directories, a manifest, or explicit metadata names.
type ComponentSourcePort interface {
	Build(ctx context.Context, req types.ComponentRequest) (types.ComponentSet, error)
}

// ManifestPort parses package.xml manifests.
type ManifestPort interface {
	ParseManifest(path string) (types.ComponentSet, error)
}

// MemberExtractorPort reads member names out of container metadata files
// such as CustomLabels.labels-meta.xml.
type MemberExtractorPort interface {
	ExtractMembers(path string, xpath string) ([]string, error)
}
