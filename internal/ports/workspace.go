package ports

// WorkspacePort discovers metadata source files within package directories.
type WorkspacePort interface {
	FindMetadataFiles(root string) ([]string, error)
}
