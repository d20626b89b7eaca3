package adapters

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"sf-metadata-coverage/internal/ports"
	"sf-metadata-coverage/internal/shared"
	"sf-metadata-coverage/internal/types"
)

// DefaultReleasesURL lists the API versions of the current platform.
const DefaultReleasesURL = "https://org62.my.salesforce.com/services/data"

type ReleaseSourceHTTPAdapter struct {
	Endpoint string
	client   *retryablehttp.Client
}

func NewReleaseSourceHTTPAdapter(endpoint string, timeoutSec int, retries int, retryDelayMs int) ReleaseSourceHTTPAdapter {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultReleasesURL
	}
	return ReleaseSourceHTTPAdapter{
		Endpoint: endpoint,
		client:   newHTTPClient(normalizeHTTPConfig(timeoutSec, retries, retryDelayMs)),
	}
}

func (a ReleaseSourceHTTPAdapter) Releases(ctx context.Context) ([]types.Release, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, a.Endpoint, nil)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to create releases request").
			WithCause(err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to fetch release list").
			WithCause(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to fetch release list").
			WithCause(shared.HTTPStatusError(resp.StatusCode, a.Endpoint))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read release list").
			WithCause(err)
	}
	return parseReleases(body)
}

func parseReleases(body []byte) ([]types.Release, error) {
	if !gjson.ValidBytes(body) {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("release list is not valid JSON")
	}
	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("release list is not an array")
	}
	var releases []types.Release
	for _, entry := range parsed.Array() {
		version := strings.TrimSpace(entry.Get("version").String())
		if version == "" {
			continue
		}
		releases = append(releases, types.Release{
			Label:   entry.Get("label").String(),
			URL:     entry.Get("url").String(),
			Version: version,
		})
	}
	return releases, nil
}

var _ ports.ReleaseSourcePort = ReleaseSourceHTTPAdapter{}
