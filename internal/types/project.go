package types

// ProjectConfig is the subset of sfdx-project.json the checker reads.
type ProjectConfig struct {
	Root               string             `json:"-"`
	PackageDirectories []PackageDirectory `json:"packageDirectories"`
	SourceAPIVersion   string             `json:"sourceApiVersion"`
}

type PackageDirectory struct {
	Path    string `json:"path"`
	Default bool   `json:"default"`
}

// Release is one entry of the platform release list.
type Release struct {
	Label   string
	URL     string
	Version string
}
