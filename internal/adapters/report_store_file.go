package adapters

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/zeebo/blake3"

	"sf-metadata-coverage/internal/ports"
	"sf-metadata-coverage/internal/types"
)

const (
	reportFilePrefix = "report-"
	reportFileSuffix = ".json"
	digestSuffix     = ".b3"

	msgReportNotFound = "local coverage report not found"
)

// ReportFileStore keeps one JSON document per major version in Dir, with a
// blake3 digest sidecar next to each report.
type ReportFileStore struct {
	Dir string
}

func NewReportFileStore(dir string) ReportFileStore {
	return ReportFileStore{Dir: dir}
}

func (s ReportFileStore) Load(major int) (types.CoverageReport, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return types.CoverageReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("report cache directory is empty")
	}
	path := s.reportPath(major)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.CoverageReport{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(msgReportNotFound).
				WithCause(err)
		}
		return types.CoverageReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read local coverage report").
			WithCause(err)
	}
	if _, ok, err := s.verifyDigest(path, data); err != nil {
		return types.CoverageReport{}, err
	} else if !ok {
		return types.CoverageReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("local coverage report digest mismatch: " + path)
	}
	report, err := decodeReport(data)
	if err != nil {
		return types.CoverageReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse local coverage report: " + path).
			WithCause(err)
	}
	return report, nil
}

func (s ReportFileStore) Store(report types.CoverageReport) error {
	major := report.Versions.Selected
	if major <= 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("report has no selected version")
	}
	if strings.TrimSpace(s.Dir) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("report cache directory is empty")
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create report cache directory").
			WithCause(err)
	}
	data, err := json.Marshal(report)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode coverage report").
			WithCause(err)
	}
	path := s.reportPath(major)
	if err := replaceReportBody(path, data); err != nil {
		return err
	}
	return writeFileAtomic(path+digestSuffix, []byte(reportDigest(data)+"\n"))
}

// Close is a no-op; the file store holds no open handles.
func (s ReportFileStore) Close() error {
	return nil
}

// replaceReportBody drops the old digest sidecar before swapping in the new
// body, so an interrupted Store leaves a report without a sidecar rather
// than a body next to a stale digest.
func replaceReportBody(path string, data []byte) error {
	if err := os.Remove(path + digestSuffix); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to remove report digest").
			WithCause(err)
	}
	return writeFileAtomic(path, data)
}

func (s ReportFileStore) List() ([]types.CachedReport, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []types.CachedReport{}, nil
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read report cache directory").
			WithCause(err)
	}
	reports := []types.CachedReport{}
	for _, entry := range entries {
		major, ok := parseReportFileName(entry.Name())
		if !ok || entry.IsDir() {
			continue
		}
		path := filepath.Join(s.Dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		digest, digestOK, err := s.verifyDigest(path, data)
		if err != nil {
			digestOK = false
		}
		cached := types.CachedReport{
			Major:     major,
			SizeBytes: info.Size(),
			StoredAt:  info.ModTime().UTC().Format(time.RFC3339),
			Digest:    digest,
			DigestOK:  digestOK,
			Location:  path,
		}
		if report, err := decodeReport(data); err == nil {
			cached.Versions = report.Versions
			cached.TypeCount = len(report.Types)
		} else {
			cached.DigestOK = false
		}
		reports = append(reports, cached)
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].Major < reports[j].Major })
	return reports, nil
}

func (s ReportFileStore) reportPath(major int) string {
	return filepath.Join(s.Dir, fmt.Sprintf("%s%d%s", reportFilePrefix, major, reportFileSuffix))
}

// verifyDigest compares data against the sidecar digest.  A missing
// sidecar is accepted and reports the freshly computed digest.
func (s ReportFileStore) verifyDigest(path string, data []byte) (string, bool, error) {
	actual := reportDigest(data)
	stored, err := os.ReadFile(path + digestSuffix)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return actual, true, nil
		}
		return actual, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read report digest").
			WithCause(err)
	}
	return actual, strings.TrimSpace(string(stored)) == actual, nil
}

func parseReportFileName(name string) (int, bool) {
	if !strings.HasPrefix(name, reportFilePrefix) || !strings.HasSuffix(name, reportFileSuffix) {
		return 0, false
	}
	value := strings.TrimSuffix(strings.TrimPrefix(name, reportFilePrefix), reportFileSuffix)
	major, err := strconv.Atoi(value)
	if err != nil || major <= 0 {
		return 0, false
	}
	return major, true
}

func reportDigest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// writeFileAtomic writes through a temp file in the target directory so
// readers never observe a partial file.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create temp file").
			WithCause(err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write " + path).
			WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write " + path).
			WithCause(err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write " + path).
			WithCause(err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to replace " + path).
			WithCause(err)
	}
	return nil
}

var _ ports.ReportStorePort = ReportFileStore{}
