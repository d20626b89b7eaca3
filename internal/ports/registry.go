package ports

import "sf-metadata-coverage/internal/types"

// TypeRegistryPort maps metadata source file suffixes to metadata types
// using layered registry files.
//
// Each call to LoadRegistry adds a new layer.  When multiple layers define
// the same suffix, the last-loaded layer wins.  This lets a project extend
// or correct the embedded defaults.
type TypeRegistryPort interface {
	// LoadRegistry loads a registry YAML file and merges its suffixes into
	// the resolver's table.  Later loads override earlier ones per suffix.
	LoadRegistry(path string) error

	// Lookup maps a file path to its type mapping.  Returns (mapping, true)
	// on hit and (zero, false) when no suffix matches.
	Lookup(path string) (types.TypeMapping, bool)
}
