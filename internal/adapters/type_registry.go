package adapters

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"sf-metadata-coverage/internal/ports"
	"sf-metadata-coverage/internal/types"
)

const metaFileSuffix = "-meta.xml"

//go:embed registry/default.yaml
var defaultRegistry []byte

// TypeRegistryAdapter implements TypeRegistryPort using layered registry
// YAML files.  Keys are either a bare suffix ("cls") or a suffix scoped to
// a directory ("aura/app"); scoped keys win over bare ones.
type TypeRegistryAdapter struct {
	merged map[string]types.TypeMapping
}

// NewTypeRegistryAdapter returns a registry preloaded with the embedded
// default layer.
func NewTypeRegistryAdapter() *TypeRegistryAdapter {
	a := &TypeRegistryAdapter{merged: make(map[string]types.TypeMapping)}
	if err := a.merge(defaultRegistry, "default"); err != nil {
		panic("embedded type registry is invalid: " + err.Error())
	}
	return a
}

// LoadRegistry reads a registry file and merges its suffixes.
// Keys in the new file override any existing entry (last-write wins).
func (a *TypeRegistryAdapter) LoadRegistry(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read type registry: " + path).
			WithCause(err)
	}
	return a.merge(data, path)
}

func (a *TypeRegistryAdapter) merge(data []byte, source string) error {
	var registry types.TypeRegistryFile
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse type registry: " + source).
			WithCause(err)
	}
	if registry.RegistryVersion == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("type registry missing registry_version: " + source)
	}
	for key, mapping := range registry.Suffixes {
		normalizedKey := strings.TrimSpace(key)
		if normalizedKey == "" {
			continue
		}
		if strings.TrimSpace(mapping.Type) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("registry suffix '" + normalizedKey + "' has empty type in " + source)
		}
		if dir, _, scoped := strings.Cut(normalizedKey, "/"); scoped {
			mapping.Directory = dir
		}
		if _, exists := a.merged[normalizedKey]; exists {
			log.Debug().
				Str("suffix", normalizedKey).
				Str("layer", source).
				Msg("registry suffix overridden by later layer")
		}
		a.merged[normalizedKey] = mapping
	}
	log.Debug().
		Str("layer", source).
		Int("suffixes", len(registry.Suffixes)).
		Int("total", len(a.merged)).
		Msg("type registry layer loaded")
	return nil
}

// Lookup maps a *-meta.xml path to its type mapping.
func (a *TypeRegistryAdapter) Lookup(path string) (types.TypeMapping, bool) {
	suffix, ok := MetaSuffix(path)
	if !ok {
		return types.TypeMapping{}, false
	}
	dirs := ancestorDirs(path)
	for _, dir := range dirs {
		if mapping, ok := a.merged[dir+"/"+suffix]; ok {
			return mapping, true
		}
	}
	mapping, ok := a.merged[suffix]
	if !ok {
		return types.TypeMapping{}, false
	}
	if mapping.Directory != "" && !containsString(dirs, mapping.Directory) {
		return types.TypeMapping{}, false
	}
	return mapping, true
}

// MetaSuffix returns the metadata suffix of a source file name, e.g. "cls"
// for "Foo.cls-meta.xml".
func MetaSuffix(path string) (string, bool) {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, metaFileSuffix) {
		return "", false
	}
	stem := strings.TrimSuffix(base, metaFileSuffix)
	idx := strings.LastIndex(stem, ".")
	if idx <= 0 || idx == len(stem)-1 {
		return "", false
	}
	return stem[idx+1:], true
}

// MemberName derives the component member for a source file.
func MemberName(path string, mapping types.TypeMapping) string {
	base := strings.TrimSuffix(filepath.Base(path), metaFileSuffix)
	name := base
	if idx := strings.LastIndex(base, "."); idx > 0 {
		name = base[:idx]
	}
	parent := filepath.Dir(path)
	if mapping.MemberFromDirectory {
		name = filepath.Base(parent)
	}
	if mapping.QualifyWithObject {
		object := filepath.Base(filepath.Dir(parent))
		if object != "" && object != "." && object != string(filepath.Separator) {
			name = object + "." + name
		}
	}
	return name
}

// ancestorDirs lists directory names from nearest to farthest.
func ancestorDirs(path string) []string {
	var dirs []string
	dir := filepath.Dir(path)
	for {
		name := filepath.Base(dir)
		if name == "." || name == string(filepath.Separator) || name == "" {
			break
		}
		dirs = append(dirs, name)
		next := filepath.Dir(dir)
		if next == dir {
			break
		}
		dir = next
	}
	return dirs
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

var _ ports.TypeRegistryPort = (*TypeRegistryAdapter)(nil)
