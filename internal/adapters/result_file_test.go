package adapters

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"sf-metadata-coverage/internal/types"
)

func TestResultFileAdapterWritesResultAndSummary(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	adapter := NewResultFileAdapter(dir)

	result := types.ValidationResult{
		Success: false,
		Message: types.MessageSomeUnsupport,
		Unsupported: []types.UnsupportedType{{
			Type:     "Bot",
			Members:  []string{"Helper"},
			Channels: map[types.Channel]bool{types.ChannelMetadataAPI: false},
		}},
	}
	require.NoError(t, adapter.WriteResult(result))

	data, err := os.ReadFile(filepath.Join(dir, ResultFileName))
	require.NoError(t, err)
	var decoded types.ValidationResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	if diff := cmp.Diff(result, decoded); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}
	assert.Contains(t, string(data), `"metadataApi": false`)

	summary := types.ResultSummary{
		Success:          false,
		Message:          types.MessageSomeUnsupport,
		APIVersion:       "64.0",
		Channels:         []string{"metadataApi"},
		ComponentCount:   3,
		UnsupportedCount: 1,
		MissingTypes:     []string{"Bot"},
	}
	require.NoError(t, adapter.WriteSummary(summary))
	raw, err := os.ReadFile(filepath.Join(dir, SummaryFileName))
	require.NoError(t, err)
	var decodedSummary types.ResultSummary
	require.NoError(t, yaml.Unmarshal(raw, &decodedSummary))
	if diff := cmp.Diff(summary, decodedSummary); diff != "" {
		t.Fatalf("unexpected summary (-want +got):\n%s", diff)
	}
}

func TestResultFileAdapterEmptyUnsupportedIsArray(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewResultFileAdapter(dir).WriteResult(types.ValidationResult{Success: true, Message: types.MessageAllSupported}))
	data, err := os.ReadFile(filepath.Join(dir, ResultFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"unsupported": []`)
}

func TestResultFileAdapterRequiresDir(t *testing.T) {
	err := NewResultFileAdapter("").WriteResult(types.ValidationResult{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output directory is empty")
}
