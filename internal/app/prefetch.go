package app

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"sf-metadata-coverage/internal/core"
)

const DefaultPrefetchCount = 5

// Prefetch downloads the reports of the latest platform releases.  A failed
// release does not stop the others; the error summarizes every failure.
func (s Service) Prefetch(ctx context.Context, req PrefetchRequest) (PrefetchResult, error) {
	count := req.Count
	if count <= 0 {
		count = DefaultPrefetchCount
	}
	releases, err := s.Releases.Releases(ctx)
	if err != nil {
		return PrefetchResult{}, err
	}
	latest := core.LatestReleases(releases, count)
	if len(latest) == 0 {
		return PrefetchResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("release list contains no API versions")
	}

	logger := log.Ctx(ctx)
	result := PrefetchResult{}
	failed := 0
	for _, release := range latest {
		outcome := PrefetchOutcome{Release: release}
		major, err := core.MajorVersion(release.Version)
		if err != nil {
			outcome.Err = err
		} else {
			outcome.Major = major
			report, fetchErr := s.fetchAndStore(ctx, major)
			outcome.Err = fetchErr
			outcome.TypeCount = len(report.Types)
		}
		if outcome.Err != nil {
			failed++
			logger.Error().Err(outcome.Err).Str("version", release.Version).Msg("prefetch failed")
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}
	if failed > 0 {
		return result, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("%s: %d of %d versions failed", msgPrefetchFail, failed, len(latest)))
	}
	return result, nil
}
