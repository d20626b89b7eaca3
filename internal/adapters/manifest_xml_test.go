package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sf-metadata-coverage/internal/types"
)

func TestManifestXMLAdapterParsesTypes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "package.xml")
	require.NoError(t, os.WriteFile(path, []byte(`<?xml version="1.0" encoding="UTF-8"?>
<Package xmlns="http://soap.sforce.com/2006/04/metadata">
    <types>
        <members>Foo</members>
        <members>Bar</members>
        <name>ApexClass</name>
    </types>
    <types>
        <members>Account</members>
        <members>Case</members>
        <name>Settings</name>
    </types>
    <types>
        <members>*</members>
        <name>CustomLabel</name>
    </types>
    <version>64.0</version>
</Package>
`), 0644))

	set, err := NewManifestXMLAdapter().ParseManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "64.0", set.SourceAPIVersion)
	want := []types.MetadataComponent{
		{TypeName: "ApexClass", Members: []string{"Foo", "Bar"}},
		{TypeName: "Settings", Members: []string{"Account", "Case"}},
		{TypeName: "CustomLabel", Members: []string{"*"}},
	}
	if diff := cmp.Diff(want, set.Components); diff != "" {
		t.Fatalf("unexpected components (-want +got):\n%s", diff)
	}
}

func TestManifestXMLAdapterErrors(t *testing.T) {
	dir := t.TempDir()
	adapter := NewManifestXMLAdapter()

	_, err := adapter.ParseManifest(filepath.Join(dir, "missing.xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read manifest")

	broken := filepath.Join(dir, "broken.xml")
	require.NoError(t, os.WriteFile(broken, []byte("<Package><types>"), 0644))
	_, err = adapter.ParseManifest(broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse manifest")

	nameless := filepath.Join(dir, "nameless.xml")
	require.NoError(t, os.WriteFile(nameless, []byte("<Package><types><members>Foo</members></types></Package>"), 0644))
	_, err = adapter.ParseManifest(nameless)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without a name")
}
