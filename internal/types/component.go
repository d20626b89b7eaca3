package types

// MetadataComponent is one metadata type and its members as declared by a
// project, a manifest or explicit names.
type MetadataComponent struct {
	TypeName string   `json:"name"`
	Members  []string `json:"members"`
}

// ComponentSet is the ordered output of component enumeration.
type ComponentSet struct {
	Components []MetadataComponent
	// SourceAPIVersion is the API version declared by the source itself,
	// e.g. the <version> element of a package.xml manifest.
	SourceAPIVersion string
}

// ComponentRequest selects exactly one component source.
type ComponentRequest struct {
	SourceDirs   []string
	ManifestPath string
	Metadata     []string
	PackageDirs  []string
}
