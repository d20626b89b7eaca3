package core

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
	"github.com/rs/zerolog/log"

	"sf-metadata-coverage/internal/types"
)

const msgUnresolvedVersion = "could not determine API version"

// APIVersionSources lists the places an API version can come from, in
// precedence order.
type APIVersionSources struct {
	Explicit string
	Source   string
	Project  string
}

// ResolveAPIVersion picks the first non-empty version out of the explicit
// flag, the source declared version and the project default.
func ResolveAPIVersion(ctx context.Context, sources APIVersionSources) (string, error) {
	candidates := []struct {
		origin string
		value  string
	}{
		{"flag", sources.Explicit},
		{"source", sources.Source},
		{"project", sources.Project},
	}
	for _, candidate := range candidates {
		value := strings.TrimSpace(candidate.value)
		if value == "" {
			continue
		}
		if _, err := MajorVersion(value); err != nil {
			return "", err
		}
		log.Ctx(ctx).Debug().Str("api_version", value).Str("origin", candidate.origin).Msg("api version resolved")
		return value, nil
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(msgUnresolvedVersion)
}

// MajorVersion returns the integer major component of an API version such
// as "64.0".
func MajorVersion(apiVersion string) (int, error) {
	value := strings.TrimSpace(apiVersion)
	if _, err := pep440.Parse(value); err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid API version %q", apiVersion)).
			WithCause(err)
	}
	head, _, _ := strings.Cut(value, ".")
	major, err := strconv.Atoi(head)
	if err != nil || major <= 0 {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid API version %q", apiVersion))
	}
	return major, nil
}

// LatestReleases returns up to count releases with the highest API
// versions, oldest first, one per major version.  Releases whose version
// does not parse are skipped.
func LatestReleases(releases []types.Release, count int) []types.Release {
	type parsedRelease struct {
		release types.Release
		version pep440.Version
	}
	byMajor := map[int]parsedRelease{}
	for _, release := range releases {
		version, err := pep440.Parse(strings.TrimSpace(release.Version))
		if err != nil {
			continue
		}
		major, err := MajorVersion(release.Version)
		if err != nil {
			continue
		}
		if current, ok := byMajor[major]; ok && version.Compare(current.version) <= 0 {
			continue
		}
		byMajor[major] = parsedRelease{release: release, version: version}
	}
	ordered := make([]parsedRelease, 0, len(byMajor))
	for _, entry := range byMajor {
		ordered = append(ordered, entry)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].version.Compare(ordered[j].version) < 0
	})
	if count > 0 && len(ordered) > count {
		ordered = ordered[len(ordered)-count:]
	}
	out := make([]types.Release, 0, len(ordered))
	for _, entry := range ordered {
		out = append(out, entry.release)
	}
	return out
}
