package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/AR-js-org/artoolkit5-go/errors"
	"github.com/AR-js-org/artoolkit5-go/netutil"
)

// Fetcher resolves a locator to raw bytes. The adapter treats all assets as
// binary; implementations must never transcode the response.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) ([]byte, error)
}

// Option is a functional option for configuring an HTTPFetcher.
type Option func(*config)

type config struct {
	client      *http.Client
	timeout     time.Duration
	maxBodySize int64
	maxRetries  int
}

func defaultConfig() config {
	return config{
		timeout:     30 * time.Second,
		maxBodySize: 32 * 1024 * 1024, // NFT feature sets run into megabytes
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) Option {
	return func(c *config) {
		if size > 0 {
			c.maxBodySize = size
		}
	}
}

// WithRetries enables transport-level retry of transient failures.
// The ingestion pipeline itself never retries; this only smooths over
// flaky CDNs below the single-attempt contract.
func WithRetries(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxRetries = n
		}
	}
}

// WithClient supplies a custom http.Client, overriding timeout and retry
// transport construction.
func WithClient(client *http.Client) Option {
	return func(c *config) {
		c.client = client
	}
}

// HTTPFetcher retrieves assets over HTTP(S) in binary mode.
type HTTPFetcher struct {
	client      *http.Client
	maxBodySize int64
}

// NewHTTPFetcher creates a fetcher with the given options.
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	client := cfg.client
	if client == nil {
		var transport http.RoundTripper = &http.Transport{
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		}
		if cfg.maxRetries > 0 {
			transport = &netutil.RetryTransport{
				Base:       transport,
				MaxRetries: cfg.maxRetries,
			}
		}
		client = &http.Client{
			Timeout:   cfg.timeout,
			Transport: transport,
		}
	}

	return &HTTPFetcher{
		client:      client,
		maxBodySize: cfg.maxBodySize,
	}
}

// Fetch retrieves the asset at locator. Non-2xx responses fail with a
// fetch_failed error carrying the status code; the body is returned as raw
// bytes with no transcoding.
func (f *HTTPFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, errors.InvalidInput(errors.PhaseFetch, "locator "+netutil.StripCredentials(locator))
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.FetchFailed(netutil.StripCredentials(locator), 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.FetchFailed(netutil.StripCredentials(locator), resp.StatusCode, nil)
	}

	limited := netutil.NewLimitedReader(resp.Body, f.maxBodySize)
	data, err := io.ReadAll(limited)
	if err != nil {
		if netutil.IsSizeLimitExceededError(err) {
			return nil, errors.SizeExceeded(netutil.StripCredentials(locator), f.maxBodySize)
		}
		return nil, errors.FetchFailed(netutil.StripCredentials(locator), resp.StatusCode, err)
	}

	return data, nil
}
