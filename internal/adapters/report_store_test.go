package adapters

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sf-metadata-coverage/internal/ports"
	"sf-metadata-coverage/internal/types"
)

func sampleReport(major int) types.CoverageReport {
	docURL := "https://developer.salesforce.com/docs/apexclass"
	return types.CoverageReport{
		Versions: types.ReportVersions{Selected: major, Min: major - 2, Max: major + 1},
		Types: map[string]types.TypeCoverage{
			"ApexClass": {
				Channels: types.Channels{
					MetadataAPI:             true,
					SourceTracking:          true,
					ManagedPackaging:        true,
					ClassicManagedPackaging: true,
				},
				Details: []types.Detail{{URL: &docURL, Name: "Apex Classes"}},
			},
			"CustomLabels": {
				Channels: types.Channels{MetadataAPI: true},
				KnownIssues: []types.KnownIssue{{
					URL:           "https://issues.salesforce.com/issue/a028c00000",
					LastUpdated:   "2025-06-15T10:30:00.000+0000",
					AffectedUsers: 12,
					Status:        "In Review",
					Summary:       "Labels drop translations",
					Title:         "Custom labels",
				}},
			},
		},
	}
}

// corruptSQLiteReport overwrites the stored body without touching its digest.
func corruptSQLiteReport(t *testing.T, store *SQLiteReportStore, major int, body []byte) {
	t.Helper()
	db, err := store.open()
	require.NoError(t, err)
	_, err = db.Exec("UPDATE reports SET body = ? WHERE major = ?", body, major)
	require.NoError(t, err)
}

func reportStores(t *testing.T) map[string]ports.ReportStorePort {
	t.Helper()
	sqliteStore := NewSQLiteReportStore(t.TempDir())
	t.Cleanup(func() { _ = sqliteStore.Close() })
	return map[string]ports.ReportStorePort{
		"file":   NewReportFileStore(filepath.Join(t.TempDir(), "cache")),
		"sqlite": sqliteStore,
	}
}

func TestReportStoresRoundTrip(t *testing.T) {
	for name, store := range reportStores(t) {
		t.Run(name, func(t *testing.T) {
			want := sampleReport(64)
			require.NoError(t, store.Store(want))

			got, err := store.Load(64)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("unexpected report (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReportStoresReplaceExisting(t *testing.T) {
	for name, store := range reportStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Store(sampleReport(64)))
			replacement := types.CoverageReport{
				Versions: types.ReportVersions{Selected: 64},
				Types:    map[string]types.TypeCoverage{"Flow": {}},
			}
			require.NoError(t, store.Store(replacement))

			got, err := store.Load(64)
			require.NoError(t, err)
			if diff := cmp.Diff(replacement, got); diff != "" {
				t.Fatalf("unexpected report (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReportStoresMissingIsNotFound(t *testing.T) {
	for name, store := range reportStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Load(99)
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
		})
	}
}

func TestReportStoresRejectUnversionedReport(t *testing.T) {
	for name, store := range reportStores(t) {
		t.Run(name, func(t *testing.T) {
			err := store.Store(types.CoverageReport{Types: map[string]types.TypeCoverage{}})
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
		})
	}
}

func TestReportStoresList(t *testing.T) {
	for name, store := range reportStores(t) {
		t.Run(name, func(t *testing.T) {
			empty, err := store.List()
			require.NoError(t, err)
			assert.Empty(t, empty)

			require.NoError(t, store.Store(sampleReport(65)))
			require.NoError(t, store.Store(sampleReport(63)))

			reports, err := store.List()
			require.NoError(t, err)
			require.Len(t, reports, 2)
			assert.Equal(t, 63, reports[0].Major)
			assert.Equal(t, 65, reports[1].Major)
			assert.Equal(t, types.ReportVersions{Selected: 65, Min: 63, Max: 66}, reports[1].Versions)
			assert.Equal(t, 2, reports[1].TypeCount)
			assert.True(t, reports[1].DigestOK)
			assert.NotEmpty(t, reports[1].Digest)
			assert.NotEmpty(t, reports[1].StoredAt)
			assert.Positive(t, reports[1].SizeBytes)
		})
	}
}

func TestReportFileStoreCorruptContent(t *testing.T) {
	dir := t.TempDir()
	store := NewReportFileStore(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "report-60.json"), []byte("{not json"), 0644))
	_, err := store.Load(60)
	require.Error(t, err)
	assert.NotEqual(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "report-61.json"), []byte(`{"versions":{"selected":61}}`), 0644))
	_, err = store.Load(61)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse local coverage report")
}

func TestReportFileStoreDigestMismatch(t *testing.T) {
	dir := t.TempDir()
	store := NewReportFileStore(dir)
	require.NoError(t, store.Store(sampleReport(64)))

	path := filepath.Join(dir, "report-64.json")
	require.FileExists(t, path+digestSuffix)
	require.NoError(t, os.WriteFile(path, []byte(`{"types":{},"versions":{"selected":64}}`), 0644))

	_, err := store.Load(64)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "digest mismatch")

	reports, err := store.List()
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.False(t, reports[0].DigestOK)
}

func TestReportFileStoreAcceptsReportWithoutSidecar(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report-62.json"), []byte(`{"types":{"ApexClass":{"channels":{"metadataApi":true}}},"versions":{"selected":62,"min":60,"max":63}}`), 0644))

	report, err := NewReportFileStore(dir).Load(62)
	require.NoError(t, err)
	assert.True(t, report.Types["ApexClass"].Channels.MetadataAPI)
	assert.Equal(t, 62, report.Versions.Selected)
}

func TestReportFileStoreListIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"notes.txt", "report-abc.json", "report-0.json", "report-64.json.b3"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	reports, err := NewReportFileStore(dir).List()
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestReportFileStoreListMissingDir(t *testing.T) {
	reports, err := NewReportFileStore(filepath.Join(t.TempDir(), "absent")).List()
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestSQLiteReportStoreCorruptBody(t *testing.T) {
	store := NewSQLiteReportStore(t.TempDir())
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Store(sampleReport(64)))
	corruptSQLiteReport(t, store, 64, []byte("{broken"))

	_, err := store.Load(64)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	reports, err := store.List()
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.False(t, reports[0].DigestOK)
}

func TestReportFileStoreInterruptedReplaceStaysLoadable(t *testing.T) {
	dir := t.TempDir()
	store := NewReportFileStore(dir)
	require.NoError(t, store.Store(sampleReport(64)))

	// Body swapped but the process stops before the new sidecar is written.
	replacement := types.CoverageReport{
		Versions: types.ReportVersions{Selected: 64},
		Types:    map[string]types.TypeCoverage{"Flow": {}},
	}
	data, err := json.Marshal(replacement)
	require.NoError(t, err)
	path := filepath.Join(dir, "report-64.json")
	require.NoError(t, replaceReportBody(path, data))
	assert.NoFileExists(t, path+digestSuffix)

	got, err := store.Load(64)
	require.NoError(t, err)
	if diff := cmp.Diff(replacement, got); diff != "" {
		t.Fatalf("unexpected report (-want +got):\n%s", diff)
	}
}

func TestReportFileStoreOverwritesStaleSidecar(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report-64.json")
	require.NoError(t, os.WriteFile(path+digestSuffix, []byte("stale\n"), 0644))

	store := NewReportFileStore(dir)
	require.NoError(t, store.Store(sampleReport(64)))
	_, err := store.Load(64)
	require.NoError(t, err)
}

func TestSQLiteReportStoreClose(t *testing.T) {
	store := NewSQLiteReportStore(t.TempDir())
	require.NoError(t, store.Store(sampleReport(64)))
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	_, err := store.Load(64)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}

func TestSQLiteReportStoreCloseUnopened(t *testing.T) {
	assert.NoError(t, NewSQLiteReportStore(t.TempDir()).Close())
	assert.NoError(t, NewReportFileStore(t.TempDir()).Close())
}
