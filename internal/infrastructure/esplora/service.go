package esplora

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"github.com/sweepr/sweepr/internal/core/ports"
	"github.com/sweepr/sweepr/pkg/circuitbreaker"
	"github.com/sweepr/sweepr/pkg/httputil"
	"github.com/sweepr/sweepr/pkg/stats"
	"go.uber.org/ratelimit"
)

const (
	// DefaultRequestTimeout bounds every http request, on top of the timeout
	// of the context given by the caller.
	DefaultRequestTimeout = 30 * time.Second
)

type esplora struct {
	apiURL  string
	client  *httputil.Client
	cb      *gobreaker.CircuitBreaker
	limiter ratelimit.Limiter
}

type response struct {
	status int
	body   string
}

// NewService returns a new esplora service as a ports.ChainClient interface.
// Requests are throttled to the given number per second, unlimited if not
// positive. No request is made until the service is used.
func NewService(
	apiURL string, requestsPerSecond int, requestTimeout time.Duration,
) (ports.ChainClient, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid explorer url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid explorer url: scheme must be http or https")
	}
	if len(u.Host) <= 0 {
		return nil, fmt.Errorf("invalid explorer url: missing host")
	}

	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	limiter := ratelimit.NewUnlimited()
	if requestsPerSecond > 0 {
		limiter = ratelimit.New(requestsPerSecond)
	}

	return &esplora{
		apiURL:  strings.TrimSuffix(apiURL, "/"),
		client:  httputil.NewClient(requestTimeout),
		cb:      circuitbreaker.NewCircuitBreaker("esplora"),
		limiter: limiter,
	}, nil
}

// request makes an http request through the circuit breaker. Only
// transport errors make the breaker trip, responses with error status are
// returned to the caller.
func (e *esplora) request(
	ctx context.Context, endpoint, method, path, body string,
	header map[string]string,
) (int, string, error) {
	e.limiter.Take()

	start := time.Now()
	res, err := e.cb.Execute(func() (interface{}, error) {
		status, resp, err := e.client.NewHTTPRequest(
			ctx, method, e.apiURL+path, body, header,
		)
		if err != nil {
			return nil, err
		}
		return response{status, resp}, nil
	})
	if err != nil {
		stats.ObserveChainRequest(endpoint, start, err)
		return 0, "", err
	}

	r := res.(response)
	var statusErr error
	if r.status != http.StatusOK {
		statusErr = responseError(r.status, r.body)
	}
	stats.ObserveChainRequest(endpoint, start, statusErr)
	return r.status, r.body, nil
}

func (e *esplora) get(
	ctx context.Context, endpoint, path string,
) (string, error) {
	status, resp, err := e.request(ctx, endpoint, http.MethodGet, path, "", nil)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", responseError(status, resp)
	}
	return resp, nil
}

func responseError(status int, resp string) error {
	resp = strings.TrimSpace(resp)
	if len(resp) <= 0 {
		resp = http.StatusText(status)
	}
	return fmt.Errorf("status %d: %s", status, resp)
}
