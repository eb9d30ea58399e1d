package httpclient

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// LoggingRoundTripper logs every outbound request with its status and duration
type LoggingRoundTripper struct {
	Proxied http.RoundTripper
	Logger  zerolog.Logger
}

// RoundTrip executes the request and logs details. Query strings are left out of the
// log line since they carry customer emails.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := lrt.Proxied.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		lrt.Logger.Warn().
			Err(err).
			Str("method", req.Method).
			Str("host", req.URL.Host).
			Str("path", req.URL.Path).
			Dur("duration", duration).
			Msg("HTTP request failed")
		return nil, err
	}

	lrt.Logger.Debug().
		Str("method", req.Method).
		Str("host", req.URL.Host).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", duration).
		Msg("HTTP request completed")

	return resp, nil
}

// New returns the shared client used for Shopify calls: a bounded total timeout,
// redirects followed with the standard library policy, no retries.
func New(timeout time.Duration, logger zerolog.Logger) *http.Client {
	return Wrap(&http.Client{Timeout: timeout}, logger)
}

// Wrap installs the logging transport on an existing client
func Wrap(client *http.Client, logger zerolog.Logger) *http.Client {
	proxied := client.Transport
	if proxied == nil {
		proxied = http.DefaultTransport
	}
	client.Transport = &LoggingRoundTripper{Proxied: proxied, Logger: logger}
	return client
}
