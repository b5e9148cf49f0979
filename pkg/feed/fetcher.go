package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/umputun/myfeeds/pkg/domain"
)

// DefaultTimeout is the fetch timeout used when none is configured
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is sent with every feed request unless overridden
const DefaultUserAgent = "MyFeeds/1.0 (RSS Reader; +https://github.com/umputun/myfeeds)"

const defaultMaxBodySize = 10 * 1024 * 1024

// HTTPFetcher retrieves raw feed documents over HTTP.
// It doesn't retry, failures are returned as *domain.FetchError.
type HTTPFetcher struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
}

// FetcherParams defines optional fetcher settings, zero values select defaults
type FetcherParams struct {
	Timeout     time.Duration
	UserAgent   string
	MaxBodySize int64
}

// NewHTTPFetcher creates a new feed fetcher
func NewHTTPFetcher(params FetcherParams) *HTTPFetcher {
	if params.Timeout <= 0 {
		params.Timeout = DefaultTimeout
	}
	if params.UserAgent == "" {
		params.UserAgent = DefaultUserAgent
	}
	if params.MaxBodySize <= 0 {
		params.MaxBodySize = defaultMaxBodySize
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: params.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent:   params.UserAgent,
		maxBodySize: params.MaxBodySize,
	}
}

// Fetch retrieves the raw document at feedURL
func (f *HTTPFetcher) Fetch(ctx context.Context, feedURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, http.NoBody)
	if err != nil {
		return nil, &domain.FetchError{Kind: domain.FetchNetwork, Err: fmt.Errorf("create request: %w", err)}
	}
	setFeedHeaders(req, f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, classifyTransportError(fmt.Errorf("read body: %w", err))
	}
	return body, nil
}

// statusError maps a non-2xx status to its fetch error kind
func statusError(code int) *domain.FetchError {
	kind := domain.FetchHTTPStatus
	switch code {
	case http.StatusNotFound:
		kind = domain.FetchNotFound
	case http.StatusForbidden:
		kind = domain.FetchForbidden
	case http.StatusUnauthorized:
		kind = domain.FetchUnauthorized
	}
	return &domain.FetchError{Kind: kind, StatusCode: code, Err: fmt.Errorf("unexpected status code: %d", code)}
}

// classifyTransportError maps errors from the http client to fetch error kinds.
// timeouts are checked first, a dial that timed out is still a timeout.
func classifyTransportError(err error) *domain.FetchError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &domain.FetchError{Kind: domain.FetchTimeout, Err: err}
	}

	var dnsErr *net.DNSError
	if errors.Is(err, syscall.ECONNREFUSED) || errors.As(err, &dnsErr) {
		return &domain.FetchError{Kind: domain.FetchConnRefused, Err: err}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return &domain.FetchError{Kind: domain.FetchConnRefused, Err: err}
	}

	return &domain.FetchError{Kind: domain.FetchNetwork, Err: err}
}
