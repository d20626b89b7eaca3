// Package testutil holds helpers shared by the e2e and integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoRoot returns the module root for a test running in tests/<suite>,
// i.e. the working directory two levels up.
func RepoRoot(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err, "working directory")
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
