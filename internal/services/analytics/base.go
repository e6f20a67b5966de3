package analytics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"FxDash/internal/domain/models"
	domsvc "FxDash/internal/domain/service"
	xhttp "FxDash/pkg/http"
)

var (
	// ErrUpstreamTimeout means the per-request deadline elapsed before a full answer.
	ErrUpstreamTimeout = errors.New("upstream timeout")
	// ErrTransport covers every other failure to obtain an answer.
	ErrTransport = errors.New("upstream unreachable")
)

// Request is one call to the analytics backend.
type Request struct {
	Resource models.Resource
	Method   string
	Path     string // relative to the backend base URL
	Query    url.Values
	Body     any
	Timeout  time.Duration
	// Params is the normalized query the call was built from.
	Params models.AnalyticsQuery
}

// Response is a buffered backend answer with any status.
type Response struct {
	Status int
	Body   []byte
}

func (r *Response) OK() bool { return r.Status >= 200 && r.Status < 300 }

// Backend performs analytics calls. Errors are ErrUpstreamTimeout or ErrTransport;
// non-2xx statuses are returned as a Response.
type Backend interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// HTTPBackend calls the remote analytics service over HTTP.
type HTTPBackend struct {
	baseURL string
	client  *xhttp.Client
	metrics domsvc.Metrics
}

// NewHTTPBackend builds a backend rooted at baseURL. Deadlines are per request,
// so the client itself should not carry a shorter global timeout.
func NewHTTPBackend(baseURL string, client *xhttp.Client, m domsvc.Metrics) *HTTPBackend {
	if m == nil {
		m = domsvc.NoopMetrics()
	}
	return &HTTPBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		metrics: m,
	}
}

func (b *HTTPBackend) Do(ctx context.Context, req *Request) (*Response, error) {
	if b.client == nil || b.baseURL == "" {
		return nil, fmt.Errorf("%w: analytics http client not initialized", ErrTransport)
	}
	start := time.Now()
	resp, err := b.client.Fetch(ctx, &xhttp.RequestOptions{
		Method:      req.Method,
		URL:         b.baseURL + req.Path,
		QueryParams: req.Query,
		Body:        req.Body,
		Timeout:     req.Timeout,
	})
	elapsed := time.Since(start).Seconds()
	if err != nil {
		if isTimeout(err) {
			b.metrics.RecordUpstream(string(req.Resource), "timeout", elapsed)
			return nil, fmt.Errorf("%w: %s %s after %s: %v", ErrUpstreamTimeout, req.Method, req.Path, req.Timeout, err)
		}
		b.metrics.RecordUpstream(string(req.Resource), "transport", elapsed)
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, req.Method, req.Path, err)
	}
	b.metrics.RecordUpstream(string(req.Resource), statusClass(resp.StatusCode), elapsed)
	return &Response{Status: resp.StatusCode, Body: resp.Body}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}

var _ Backend = (*HTTPBackend)(nil)
