package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"

	"sf-metadata-coverage/internal/ports"
	"sf-metadata-coverage/internal/shared"
	"sf-metadata-coverage/internal/types"
)

// DefaultReportURL is the public coverage report endpoint.
const DefaultReportURL = "https://dx-extended-coverage.my.salesforce-sites.com/services/apexrest/report"

const msgDownloadFailed = "failed downloading metadata coverage report"

const maxErrorBodyBytes = 512

type ReportFetcherHTTPAdapter struct {
	Endpoint string
	Progress ports.ProgressPort
	client   *retryablehttp.Client
}

// NewReportFetcherHTTPAdapter returns a fetcher that makes exactly one
// attempt per Fetch call.
func NewReportFetcherHTTPAdapter(endpoint string, timeoutSec int, progress ports.ProgressPort) ReportFetcherHTTPAdapter {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultReportURL
	}
	if progress == nil {
		progress = ports.NopProgress{}
	}
	cfg := normalizeHTTPConfig(timeoutSec, 0, 0)
	cfg.retries = 0
	return ReportFetcherHTTPAdapter{
		Endpoint: endpoint,
		Progress: progress,
		client:   newHTTPClient(cfg),
	}
}

func (a ReportFetcherHTTPAdapter) Fetch(ctx context.Context, major int) (types.CoverageReport, error) {
	if major <= 0 {
		return types.CoverageReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("major API version must be positive")
	}
	target, err := reportURL(a.Endpoint, major)
	if err != nil {
		return types.CoverageReport{}, err
	}

	a.Progress.Start(fmt.Sprintf("Downloading Metadata Coverage Report v%d", major))
	defer a.Progress.Stop()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return types.CoverageReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create report request").
			WithCause(err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := a.client.Do(req)
	if err != nil {
		return types.CoverageReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(msgDownloadFailed).
			WithCause(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return types.CoverageReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(msgDownloadFailed).
			WithCause(shared.HTTPStatusErrorWithBody(resp.StatusCode, target, string(body)))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.CoverageReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(msgDownloadFailed).
			WithCause(err)
	}
	report, err := decodeReport(data)
	if err != nil {
		return types.CoverageReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(msgDownloadFailed).
			WithCause(err)
	}
	if report.Versions.Selected == 0 {
		report.Versions.Selected = major
	}
	log.Ctx(ctx).Debug().
		Int("major", major).
		Int("types", len(report.Types)).
		Msg("coverage report downloaded")
	return report, nil
}

func reportURL(endpoint string, major int) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid report url %q", endpoint))
	}
	query := parsed.Query()
	query.Set("version", strconv.Itoa(major))
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

// decodeReport parses a report body.  A document without a types object
// is not a report.
func decodeReport(data []byte) (types.CoverageReport, error) {
	var report types.CoverageReport
	if err := json.Unmarshal(data, &report); err != nil {
		return types.CoverageReport{}, err
	}
	if report.Types == nil {
		return types.CoverageReport{}, fmt.Errorf("report has no types")
	}
	return report, nil
}

var _ ports.ReportFetcherPort = ReportFetcherHTTPAdapter{}
