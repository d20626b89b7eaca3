package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const labelsXML = `<?xml version="1.0" encoding="UTF-8"?>
<CustomLabels xmlns="http://soap.sforce.com/2006/04/metadata">
    <labels>
        <fullName>Greeting</fullName>
        <language>en_US</language>
        <protected>false</protected>
        <shortDescription>Greeting</shortDescription>
        <value>Hello</value>
    </labels>
    <labels>
        <fullName>Farewell</fullName>
        <language>en_US</language>
        <protected>false</protected>
        <shortDescription>Farewell</shortDescription>
        <value>Bye</value>
    </labels>
    <labels>
        <fullName>Greeting</fullName>
        <language>en_US</language>
        <value>Duplicate</value>
    </labels>
</CustomLabels>
`

func TestMemberExtractorReadsNamespacedLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CustomLabels.labels-meta.xml")
	require.NoError(t, os.WriteFile(path, []byte(labelsXML), 0644))

	registry := NewTypeRegistryAdapter()
	mapping, ok := registry.Lookup(path)
	require.True(t, ok)

	members, err := NewMemberExtractorXMLAdapter().ExtractMembers(path, mapping.MemberXPath)
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"Greeting", "Farewell"}, members); diff != "" {
		t.Fatalf("unexpected members (-want +got):\n%s", diff)
	}
}

func TestMemberExtractorErrors(t *testing.T) {
	dir := t.TempDir()
	adapter := NewMemberExtractorXMLAdapter()

	_, err := adapter.ExtractMembers(filepath.Join(dir, "missing.xml"), "//fullName")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open metadata file")

	_, err = adapter.ExtractMembers(filepath.Join(dir, "missing.xml"), " ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "member xpath is empty")

	path := filepath.Join(dir, "labels.xml")
	require.NoError(t, os.WriteFile(path, []byte(labelsXML), 0644))
	_, err = adapter.ExtractMembers(path, "//*[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid member xpath")
}
