package adapters

import (
	"encoding/xml"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"sf-metadata-coverage/internal/ports"
	"sf-metadata-coverage/internal/types"
)

// ManifestXMLAdapter parses package.xml manifests.
type ManifestXMLAdapter struct{}

func NewManifestXMLAdapter() ManifestXMLAdapter {
	return ManifestXMLAdapter{}
}

// encoding/xml matches on local names when the struct tags carry no
// namespace, so the metadata namespace needs no special handling.
type manifestXML struct {
	XMLName xml.Name       `xml:"Package"`
	Types   []manifestType `xml:"types"`
	Version string         `xml:"version"`
}

type manifestType struct {
	Members []string `xml:"members"`
	Name    string   `xml:"name"`
}

func (a ManifestXMLAdapter) ParseManifest(path string) (types.ComponentSet, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return types.ComponentSet{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read manifest: " + path).
			WithCause(err)
	}
	var manifest manifestXML
	if err := xml.Unmarshal(content, &manifest); err != nil {
		return types.ComponentSet{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse manifest: " + path).
			WithCause(err)
	}

	collector := newComponentCollector()
	for _, entry := range manifest.Types {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return types.ComponentSet{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("manifest has a types entry without a name: " + path)
		}
		collector.addType(name)
		for _, member := range entry.Members {
			collector.add(name, member)
		}
	}
	return types.ComponentSet{
		Components:       collector.components(),
		SourceAPIVersion: strings.TrimSpace(manifest.Version),
	}, nil
}

var _ ports.ManifestPort = ManifestXMLAdapter{}
