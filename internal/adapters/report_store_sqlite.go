package adapters

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"sf-metadata-coverage/internal/ports"
	"sf-metadata-coverage/internal/types"
)

const SQLiteReportDBName = "reports.db"

const sqliteReportSchema = `
CREATE TABLE IF NOT EXISTS reports (
  major     INTEGER PRIMARY KEY,
  body      BLOB NOT NULL,
  digest    TEXT NOT NULL,
  stored_at TEXT NOT NULL
);`

// SQLiteReportStore keeps reports in a single SQLite database.  The
// connection is opened lazily on first use.
type SQLiteReportStore struct {
	Path string

	once    sync.Once
	db      *sql.DB
	openErr error
}

func NewSQLiteReportStore(dir string) *SQLiteReportStore {
	return &SQLiteReportStore{Path: filepath.Join(dir, SQLiteReportDBName)}
}

func (s *SQLiteReportStore) open() (*sql.DB, error) {
	s.once.Do(func() {
		if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
			s.openErr = errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create report cache directory").
				WithCause(err)
			return
		}
		dsn := "file:" + s.Path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
		db, err := sql.Open("sqlite", dsn)
		if err == nil {
			err = db.Ping()
		}
		if err == nil {
			_, err = db.Exec(sqliteReportSchema)
		}
		if err != nil {
			if db != nil {
				db.Close()
			}
			s.openErr = errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to open report database: " + s.Path).
				WithCause(err)
			return
		}
		log.Debug().Str("path", s.Path).Msg("report database opened")
		s.db = db
	})
	return s.db, s.openErr
}

func (s *SQLiteReportStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if s.openErr == nil {
		s.openErr = errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("report database is closed")
	}
	return err
}

func (s *SQLiteReportStore) Load(major int) (types.CoverageReport, error) {
	db, err := s.open()
	if err != nil {
		return types.CoverageReport{}, err
	}
	var body []byte
	var digest string
	err = db.QueryRow("SELECT body, digest FROM reports WHERE major = ?", major).Scan(&body, &digest)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.CoverageReport{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(msgReportNotFound)
		}
		return types.CoverageReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to query local coverage report").
			WithCause(err)
	}
	if reportDigest(body) != strings.TrimSpace(digest) {
		return types.CoverageReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("local coverage report digest mismatch")
	}
	report, err := decodeReport(body)
	if err != nil {
		return types.CoverageReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse local coverage report").
			WithCause(err)
	}
	return report, nil
}

func (s *SQLiteReportStore) Store(report types.CoverageReport) error {
	major := report.Versions.Selected
	if major <= 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("report has no selected version")
	}
	db, err := s.open()
	if err != nil {
		return err
	}
	body, err := json.Marshal(report)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode coverage report").
			WithCause(err)
	}
	_, err = db.Exec(`INSERT INTO reports(major, body, digest, stored_at) VALUES(?,?,?,?)
ON CONFLICT(major) DO UPDATE SET body = excluded.body, digest = excluded.digest, stored_at = excluded.stored_at`,
		major, body, reportDigest(body), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to store coverage report").
			WithCause(err)
	}
	return nil
}

func (s *SQLiteReportStore) List() ([]types.CachedReport, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query("SELECT major, body, digest, stored_at FROM reports ORDER BY major")
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to list local coverage reports").
			WithCause(err)
	}
	defer rows.Close()

	reports := []types.CachedReport{}
	for rows.Next() {
		var (
			major    int
			body     []byte
			digest   string
			storedAt string
		)
		if err := rows.Scan(&major, &body, &digest, &storedAt); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to read local coverage report row").
				WithCause(err)
		}
		cached := types.CachedReport{
			Major:     major,
			SizeBytes: int64(len(body)),
			StoredAt:  storedAt,
			Digest:    digest,
			DigestOK:  reportDigest(body) == strings.TrimSpace(digest),
			Location:  s.Path,
		}
		if report, err := decodeReport(body); err == nil {
			cached.Versions = report.Versions
			cached.TypeCount = len(report.Types)
		} else {
			cached.DigestOK = false
		}
		reports = append(reports, cached)
	}
	if err := rows.Err(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to list local coverage reports").
			WithCause(err)
	}
	return reports, nil
}

var _ ports.ReportStorePort = (*SQLiteReportStore)(nil)
