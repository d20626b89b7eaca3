package adapters

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"sf-metadata-coverage/internal/ports"
	"sf-metadata-coverage/internal/types"
)

const (
	wildcardMember   = "*"
	settingsTypeName = "Settings"
)

// ComponentSourceAdapter enumerates components from exactly one of: source
// directories, a package.xml manifest, or explicit metadata entries.
// Wildcard members of a manifest or of metadata entries are resolved
// against the project's package directories.
type ComponentSourceAdapter struct {
	Workspace ports.WorkspacePort
	Registry  ports.TypeRegistryPort
	Manifest  ports.ManifestPort
	Extractor ports.MemberExtractorPort
}

func NewComponentSourceAdapter(registry ports.TypeRegistryPort) ComponentSourceAdapter {
	return ComponentSourceAdapter{
		Workspace: NewWorkspaceAdapter(),
		Registry:  registry,
		Manifest:  NewManifestXMLAdapter(),
		Extractor: NewMemberExtractorXMLAdapter(),
	}
}

func (a ComponentSourceAdapter) Build(ctx context.Context, req types.ComponentRequest) (types.ComponentSet, error) {
	sources := 0
	if len(req.SourceDirs) > 0 {
		sources++
	}
	if strings.TrimSpace(req.ManifestPath) != "" {
		sources++
	}
	if len(req.Metadata) > 0 {
		sources++
	}
	switch {
	case sources > 1:
		return types.ComponentSet{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("provide only one of --source-dir, --manifest or --metadata")
	case sources == 0:
		return types.ComponentSet{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("provide one of --source-dir, --manifest or --metadata")
	case len(req.SourceDirs) > 0:
		return a.fromSourceDirs(ctx, req.SourceDirs)
	}
	var set types.ComponentSet
	var err error
	if strings.TrimSpace(req.ManifestPath) != "" {
		set, err = a.Manifest.ParseManifest(req.ManifestPath)
	} else {
		set, err = FromMetadataEntries(req.Metadata)
	}
	if err != nil {
		return types.ComponentSet{}, err
	}
	return a.expandWildcards(ctx, set, req.PackageDirs)
}

// expandWildcards replaces "*" members with the members found in the
// package directories.  Settings cannot stay a wildcard since each member
// is its own report entry.
func (a ComponentSourceAdapter) expandWildcards(ctx context.Context, set types.ComponentSet, packageDirs []string) (types.ComponentSet, error) {
	if !hasWildcard(set.Components) {
		return set, nil
	}
	var found map[string][]string
	if len(packageDirs) > 0 {
		scanned, err := a.fromSourceDirs(ctx, packageDirs)
		if err != nil {
			return types.ComponentSet{}, err
		}
		found = make(map[string][]string, len(scanned.Components))
		for _, component := range scanned.Components {
			found[component.TypeName] = component.Members
		}
	}
	collector := newComponentCollector()
	for _, component := range set.Components {
		collector.addType(component.TypeName)
		for _, member := range component.Members {
			if member != wildcardMember {
				collector.add(component.TypeName, member)
				continue
			}
			resolved := found[component.TypeName]
			if len(resolved) == 0 {
				if component.TypeName == settingsTypeName {
					return types.ComponentSet{}, errbuilder.New().
						WithCode(errbuilder.CodeInvalidArgument).
						WithMsg("cannot resolve Settings:* from the package directories; name the settings, e.g. Settings:Account")
				}
				collector.add(component.TypeName, member)
				continue
			}
			log.Ctx(ctx).Debug().Str("type", component.TypeName).Int("members", len(resolved)).Msg("wildcard resolved from package directories")
			for _, name := range resolved {
				collector.add(component.TypeName, name)
			}
		}
	}
	return types.ComponentSet{Components: collector.components(), SourceAPIVersion: set.SourceAPIVersion}, nil
}

func hasWildcard(components []types.MetadataComponent) bool {
	for _, component := range components {
		for _, member := range component.Members {
			if member == wildcardMember {
				return true
			}
		}
	}
	return false
}

// FromMetadataEntries groups "Type" and "Type:Member" entries by type in
// first-seen order.  A bare type stands for all members.
func FromMetadataEntries(entries []string) (types.ComponentSet, error) {
	collector := newComponentCollector()
	for _, entry := range entries {
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		typeName, member, hasMember := strings.Cut(trimmed, ":")
		typeName = strings.TrimSpace(typeName)
		if typeName == "" {
			return types.ComponentSet{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid metadata entry: " + entry)
		}
		if !hasMember || strings.TrimSpace(member) == "" {
			member = wildcardMember
		}
		collector.add(typeName, member)
	}
	if collector.empty() {
		return types.ComponentSet{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no metadata entries given")
	}
	return types.ComponentSet{Components: collector.components()}, nil
}

func (a ComponentSourceAdapter) fromSourceDirs(ctx context.Context, dirs []string) (types.ComponentSet, error) {
	logger := log.Ctx(ctx)
	collector := newComponentCollector()
	for _, dir := range dirs {
		files, err := a.Workspace.FindMetadataFiles(dir)
		if err != nil {
			return types.ComponentSet{}, err
		}
		for _, file := range files {
			mapping, ok := a.Registry.Lookup(file)
			if !ok {
				logger.Debug().Str("file", file).Msg("no registry entry for metadata file")
				continue
			}
			if mapping.MemberXPath == "" {
				collector.add(mapping.Type, MemberName(file, mapping))
				continue
			}
			members, err := a.Extractor.ExtractMembers(file, mapping.MemberXPath)
			if err != nil {
				return types.ComponentSet{}, err
			}
			typeName := mapping.Type
			if mapping.MemberType != "" {
				typeName = mapping.MemberType
			}
			prefix := ""
			if mapping.QualifyMembers {
				prefix = MemberName(file, types.TypeMapping{Type: mapping.Type}) + "."
			}
			collector.addType(typeName)
			for _, member := range members {
				collector.add(typeName, prefix+member)
			}
		}
		logger.Debug().Str("dir", filepath.Clean(dir)).Int("files", len(files)).Msg("source directory scanned")
	}
	return types.ComponentSet{Components: collector.components()}, nil
}

// componentCollector accumulates members per type, keeping first-seen order
// of both types and members.
type componentCollector struct {
	order   []string
	members map[string][]string
	seen    map[string]map[string]struct{}
}

func newComponentCollector() *componentCollector {
	return &componentCollector{
		members: map[string][]string{},
		seen:    map[string]map[string]struct{}{},
	}
}

func (c *componentCollector) addType(typeName string) {
	if _, ok := c.seen[typeName]; ok {
		return
	}
	c.order = append(c.order, typeName)
	c.seen[typeName] = map[string]struct{}{}
	c.members[typeName] = []string{}
}

func (c *componentCollector) add(typeName string, member string) {
	c.addType(typeName)
	member = strings.TrimSpace(member)
	if member == "" {
		return
	}
	if _, dup := c.seen[typeName][member]; dup {
		return
	}
	c.seen[typeName][member] = struct{}{}
	c.members[typeName] = append(c.members[typeName], member)
}

func (c *componentCollector) empty() bool {
	return len(c.order) == 0
}

func (c *componentCollector) components() []types.MetadataComponent {
	out := make([]types.MetadataComponent, 0, len(c.order))
	for _, typeName := range c.order {
		out = append(out, types.MetadataComponent{
			TypeName: typeName,
			Members:  c.members[typeName],
		})
	}
	return out
}

var _ ports.ComponentSourcePort = ComponentSourceAdapter{}
