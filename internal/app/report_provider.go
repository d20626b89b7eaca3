package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"sf-metadata-coverage/internal/types"
)

// GetReport returns the report for major from the local store, downloading
// and storing it on a cache miss.  Unreadable local content is reported as
// corrupt unless RefetchCorrupt is set.
func (s Service) GetReport(ctx context.Context, major int) (types.CoverageReport, error) {
	logger := log.Ctx(ctx)
	report, err := s.Store.Load(major)
	if err == nil {
		logger.Debug().Int("major", major).Int("types", len(report.Types)).Msg("using local coverage report")
		return report, nil
	}
	if errbuilder.CodeOf(err) != errbuilder.CodeNotFound {
		if !s.RefetchCorrupt {
			return types.CoverageReport{}, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(msgCorruptReport).
				WithCause(err)
		}
		logger.Warn().Err(err).Int("major", major).Msg("local coverage report unreadable, downloading again")
	} else {
		logger.Debug().Int("major", major).Msg("no local coverage report")
	}
	return s.fetchAndStore(ctx, major)
}

func (s Service) fetchAndStore(ctx context.Context, major int) (types.CoverageReport, error) {
	report, err := s.Fetcher.Fetch(ctx, major)
	if err != nil {
		return types.CoverageReport{}, err
	}
	if report.Versions.Selected == 0 {
		report.Versions.Selected = major
	}
	if err := s.Store.Store(report); err != nil {
		return types.CoverageReport{}, err
	}
	log.Ctx(ctx).Info().Int("major", major).Int("types", len(report.Types)).Msg("coverage report stored")
	return report, nil
}
