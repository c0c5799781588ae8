package engine

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	stealth "github.com/anatolykoptev/go-stealth"
)

// Re-export stealth types and functions for engine consumers.
type BrowserClient = stealth.BrowserClient

type RetryConfig = stealth.RetryConfig

var DefaultRetryConfig = stealth.DefaultRetryConfig

// NoRetry performs a single attempt. Caption probes use it: the cascade
// itself is the fallback, and each probe has its own short deadline.
var NoRetry = stealth.RetryConfig{MaxRetries: 0}

func ChromeHeaders() map[string]string { return stealth.ChromeHeaders() }
func RandomUserAgent() string          { return stealth.RandomUserAgent() }
func IsRetryableStatus(code int) bool  { return stealth.IsRetryableStatus(code) }

func RetryDo[T any](ctx context.Context, rc stealth.RetryConfig, fn func() (T, error)) (T, error) {
	return stealth.RetryDo(ctx, rc, fn)
}

func RetryHTTP(ctx context.Context, rc stealth.RetryConfig, fn func() (*http.Response, error)) (*http.Response, error) {
	return stealth.RetryHTTP(ctx, rc, fn)
}

// Doer is the subset of *http.Client used by the YouTube strategies.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// BrowserDoer adapts a BrowserClient (Chrome TLS fingerprint) to Doer.
type BrowserDoer struct {
	BC *BrowserClient
}

// Do sends req through the browser client. Context cancellation is honoured
// only before the request starts; tls-client applies its own timeout.
func (d BrowserDoer) Do(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		return nil, err
	}
	headers := make(map[string]string)
	for k, v := range ChromeHeaders() {
		headers[strings.ToLower(k)] = v
	}
	for k := range req.Header {
		headers[strings.ToLower(k)] = req.Header.Get(k)
	}
	data, _, status, err := d.BC.Do(req.Method, req.URL.String(), headers, req.Body)
	if err != nil {
		return nil, err
	}
	return &http.Response{
		Status:     http.StatusText(status),
		StatusCode: status,
		Header:     make(http.Header),
		Body:       io.NopCloser(bytes.NewReader(data)),
		Request:    req,
	}, nil
}

// PageDoer returns the client used for HTML page fetches: the browser
// client when configured, HTTPClient otherwise.
func PageDoer(c *Config) Doer {
	if c.BrowserClient != nil {
		return BrowserDoer{BC: c.BrowserClient}
	}
	if c.HTTPClient == nil {
		return nil
	}
	return c.HTTPClient
}
