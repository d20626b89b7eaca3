package adapters

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultHTTPTimeout = 60 * time.Second
const defaultHTTPRetries = 3
const defaultHTTPRetryDelay = 200 * time.Millisecond
const maxHTTPRetryDelay = 2 * time.Second

type httpRetryConfig struct {
	timeout   time.Duration
	retries   int
	baseDelay time.Duration
}

func normalizeHTTPConfig(timeoutSec int, retries int, delayMs int) httpRetryConfig {
	timeout := time.Duration(timeoutSec) * time.Second
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	retryCount := retries
	if retryCount <= 0 {
		retryCount = defaultHTTPRetries
	}
	baseDelay := time.Duration(delayMs) * time.Millisecond
	if baseDelay <= 0 {
		baseDelay = defaultHTTPRetryDelay
	}
	return httpRetryConfig{
		timeout:   timeout,
		retries:   retryCount,
		baseDelay: baseDelay,
	}
}

// newHTTPClient builds a retrying client.  cfg.retries counts retries after
// the first attempt; zero means a single attempt.  Non-2xx responses are
// handed back to the caller once retries are exhausted.
func newHTTPClient(cfg httpRetryConfig) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.HTTPClient.Timeout = cfg.timeout
	client.RetryMax = cfg.retries
	client.RetryWaitMin = cfg.baseDelay
	client.RetryWaitMax = maxHTTPRetryDelay
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.Logger = zerologHTTPLogger{}
	return client
}

// zerologHTTPLogger routes retryablehttp logs into zerolog.  Request level
// chatter is demoted to debug.
type zerologHTTPLogger struct{}

func (zerologHTTPLogger) Error(msg string, keysAndValues ...interface{}) {
	withFields(log.Error(), keysAndValues).Msg(msg)
}

func (zerologHTTPLogger) Info(msg string, keysAndValues ...interface{}) {
	withFields(log.Debug(), keysAndValues).Msg(msg)
}

func (zerologHTTPLogger) Debug(msg string, keysAndValues ...interface{}) {
	withFields(log.Debug(), keysAndValues).Msg(msg)
}

func (zerologHTTPLogger) Warn(msg string, keysAndValues ...interface{}) {
	withFields(log.Warn(), keysAndValues).Msg(msg)
}

func withFields(event *zerolog.Event, keysAndValues []interface{}) *zerolog.Event {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		event = event.Interface(fmt.Sprint(keysAndValues[i]), keysAndValues[i+1])
	}
	return event
}
