package app

import (
	"strings"

	"sf-metadata-coverage/internal/adapters"
	"sf-metadata-coverage/internal/core"
	"sf-metadata-coverage/internal/ports"
)

const (
	CacheBackendFile   = "file"
	CacheBackendSQLite = "sqlite"
)

// Config carries the resolved configuration the service is built from.
type Config struct {
	CacheDir       string
	CacheBackend   string
	ReportURL      string
	ReleasesURL    string
	HTTPTimeoutSec int
	HTTPRetries    int
	RefetchCorrupt bool
	TypeRegistries []string
	Progress       ports.ProgressPort
}

type Service struct {
	Store          ports.ReportStorePort
	Fetcher        ports.ReportFetcherPort
	Releases       ports.ReleaseSourcePort
	Components     ports.ComponentSourcePort
	Project        ports.ProjectPort
	ResultWriter   func(dir string) ports.ResultWriterPort
	Validator      core.CoverageValidator
	RefetchCorrupt bool
}

func NewService(cfg Config) (Service, error) {
	registry := adapters.NewTypeRegistryAdapter()
	for _, path := range cfg.TypeRegistries {
		if strings.TrimSpace(path) == "" {
			continue
		}
		if err := registry.LoadRegistry(path); err != nil {
			return Service{}, err
		}
	}
	store, err := newReportStore(cfg.CacheBackend, cfg.CacheDir)
	if err != nil {
		return Service{}, err
	}
	return Service{
		Store:      store,
		Fetcher:    adapters.NewReportFetcherHTTPAdapter(cfg.ReportURL, cfg.HTTPTimeoutSec, cfg.Progress),
		Releases:   adapters.NewReleaseSourceHTTPAdapter(cfg.ReleasesURL, cfg.HTTPTimeoutSec, cfg.HTTPRetries, 0),
		Components: adapters.NewComponentSourceAdapter(registry),
		Project:    adapters.NewProjectFileAdapter(),
		ResultWriter: func(dir string) ports.ResultWriterPort {
			return adapters.NewResultFileAdapter(dir)
		},
		Validator:      core.NewCoverageValidator(),
		RefetchCorrupt: cfg.RefetchCorrupt,
	}, nil
}

// Close releases the report store.
func (s Service) Close() error {
	if s.Store == nil {
		return nil
	}
	return s.Store.Close()
}

func newReportStore(backend string, dir string) (ports.ReportStorePort, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errInvalid("cache directory is required")
	}
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", CacheBackendFile:
		return adapters.NewReportFileStore(dir), nil
	case CacheBackendSQLite:
		return adapters.NewSQLiteReportStore(dir), nil
	default:
		return nil, errInvalid("unknown cache backend " + backend + " (expected file or sqlite)")
	}
}
