package adapters

import (
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/antchfx/xmlquery"

	"sf-metadata-coverage/internal/ports"
)

// MemberExtractorXMLAdapter selects member names out of container files
// with an XPath expression.  Metadata files carry a default namespace, so
// expressions should match on local-name().
type MemberExtractorXMLAdapter struct{}

func NewMemberExtractorXMLAdapter() MemberExtractorXMLAdapter {
	return MemberExtractorXMLAdapter{}
}

func (a MemberExtractorXMLAdapter) ExtractMembers(path string, xpath string) ([]string, error) {
	if strings.TrimSpace(xpath) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("member xpath is empty")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to open metadata file: " + path).
			WithCause(err)
	}
	defer file.Close()

	doc, err := xmlquery.Parse(file)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse metadata file: " + path).
			WithCause(err)
	}
	nodes, err := xmlquery.QueryAll(doc, xpath)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid member xpath: " + xpath).
			WithCause(err)
	}
	var members []string
	seen := map[string]struct{}{}
	for _, node := range nodes {
		value := strings.TrimSpace(node.InnerText())
		if value == "" {
			continue
		}
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		members = append(members, value)
	}
	return members, nil
}

var _ ports.MemberExtractorPort = MemberExtractorXMLAdapter{}
