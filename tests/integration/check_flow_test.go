package integration

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sf-metadata-coverage/internal/app"
	"sf-metadata-coverage/internal/types"
	"sf-metadata-coverage/tests/testutil"
)

// startReportServer serves the fixture report for every requested version,
// rewriting versions.selected to the requested major.
func startReportServer(t *testing.T, hits *atomic.Int32) string {
	t.Helper()
	body, err := os.ReadFile(filepath.Join(testutil.RepoRoot(t), "fixtures", "cache", "report-64.json"))
	require.NoError(t, err)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if _, err := strconv.Atoi(r.URL.Query().Get("version")); err != nil {
			http.Error(w, "bad version", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server.URL + "/services/apexrest/report"
}

func TestCheckFlowDownloadsOnceAndCaches(t *testing.T) {
	for _, backend := range []string{app.CacheBackendFile, app.CacheBackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			var hits atomic.Int32
			service, err := app.NewService(app.Config{
				CacheDir:       t.TempDir(),
				CacheBackend:   backend,
				ReportURL:      startReportServer(t, &hits),
				HTTPTimeoutSec: 5,
			})
			require.NoError(t, err)

			projectDir := filepath.Join(testutil.RepoRoot(t), "fixtures", "project")
			req := app.CheckRequest{
				ProjectDir: projectDir,
				SourceDirs: []string{filepath.Join(projectDir, "force-app")},
				Channels:   []types.Channel{types.ChannelMetadataAPI, types.ChannelSourceTracking},
			}
			result, err := service.Check(t.Context(), req)
			require.NoError(t, err)
			assert.True(t, result.Result.Success)
			assert.Equal(t, "64.0", result.APIVersion)
			assert.Equal(t, int32(1), hits.Load())

			req.Channels = []types.Channel{types.ChannelChangeSets}
			result, err = service.Check(t.Context(), req)
			require.NoError(t, err)
			assert.False(t, result.Result.Success)
			require.Len(t, result.Result.Unsupported, 1)
			assert.ElementsMatch(t, []string{"Greeting", "Farewell"}, result.Result.Unsupported[0].Members)
			assert.Equal(t, int32(1), hits.Load(), "second check must use the cached report")

			listed, err := service.List()
			require.NoError(t, err)
			require.Len(t, listed.Reports, 1)
			assert.Equal(t, 64, listed.Reports[0].Major)
			assert.True(t, listed.Reports[0].DigestOK)
		})
	}
}

func TestDownloadReplacesCachedReport(t *testing.T) {
	var hits atomic.Int32
	service, err := app.NewService(app.Config{
		CacheDir:       t.TempDir(),
		ReportURL:      startReportServer(t, &hits),
		HTTPTimeoutSec: 5,
	})
	require.NoError(t, err)

	for range 2 {
		result, err := service.Download(t.Context(), app.DownloadRequest{APIVersion: "64.0"})
		require.NoError(t, err)
		assert.Equal(t, 64, result.Major)
		assert.Equal(t, 3, result.TypeCount)
	}
	assert.Equal(t, int32(2), hits.Load())
}

func TestCheckFlowUnreachableService(t *testing.T) {
	service, err := app.NewService(app.Config{
		CacheDir:       t.TempDir(),
		ReportURL:      "http://127.0.0.1:1/report",
		HTTPTimeoutSec: 2,
	})
	require.NoError(t, err)

	_, err = service.Check(t.Context(), app.CheckRequest{
		Metadata:   []string{"ApexClass"},
		APIVersion: "64.0",
		Channels:   []types.Channel{types.ChannelMetadataAPI},
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))

	listed, err := service.List()
	require.NoError(t, err)
	assert.Empty(t, listed.Reports)
}
