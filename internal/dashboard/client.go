// Package dashboard reads the /api proxy routes and returns typed analytics
// results for the dashboard panels.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"FxDash/internal/domain/models"
	domsvc "FxDash/internal/domain/service"
	"FxDash/internal/services/fallback"
	"FxDash/internal/services/mock"
	xhttp "FxDash/pkg/http"
	"FxDash/pkg/logger"
)

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// UseMockData serves generated data when a call fails outright.
	UseMockData bool
}

// Client is the dashboard's data-access layer.
type Client struct {
	http    *xhttp.Client
	baseURL string
	timeout time.Duration
	mock    *mock.Generator // nil unless mock mode is on
	metrics domsvc.Metrics
	log     *logger.Logger
}

func NewClient(opts Options, hc *xhttp.Client, gen *mock.Generator, m domsvc.Metrics, l *logger.Logger) *Client {
	if hc == nil {
		hc = xhttp.NewClient()
	}
	if m == nil {
		m = domsvc.NoopMetrics()
	}
	if l == nil {
		l = logger.Nop()
	}
	c := &Client{
		http:    hc,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		timeout: opts.Timeout,
		metrics: m,
		log:     l,
	}
	if opts.UseMockData {
		if gen == nil {
			gen = mock.NewGenerator()
		}
		c.mock = gen
	}
	return c
}

func pairValues(q models.AnalyticsQuery) url.Values {
	v := q.Values()
	v.Set("base", q.Base())
	v.Set("target", q.Target())
	return v
}

// fetch calls a proxy route and returns the body of a 2xx answer.
func (c *Client) fetch(ctx context.Context, resource models.Resource, q models.AnalyticsQuery, method, path string, query url.Values, body any) ([]byte, error) {
	resp, err := c.http.Fetch(ctx, &xhttp.RequestOptions{
		Method:      method,
		URL:         c.baseURL + path,
		QueryParams: query,
		Body:        body,
		Timeout:     c.timeout,
	})
	if err != nil {
		return nil, c.fail(&Error{Resource: resource, Base: q.Base(), Target: q.Target(), Kind: ErrTransport, Err: err})
	}
	if !resp.OK() {
		return nil, c.fail(&Error{
			Resource: resource, Base: q.Base(), Target: q.Target(),
			Kind: ErrTransport, Status: resp.StatusCode,
			Err: errors.New(proxyMessage(resp)),
		})
	}
	return resp.Body, nil
}

func proxyMessage(resp *xhttp.Response) string {
	var body xhttp.ErrorBody
	if json.Unmarshal(resp.Body, &body) == nil && body.Error != "" {
		return body.Error
	}
	return "status " + strconv.Itoa(resp.StatusCode)
}

func (c *Client) fail(e *Error) error {
	c.log.Warn("dashboard data request failed",
		logger.String("resource", string(e.Resource)),
		logger.Pair(e.Base, e.Target),
		logger.Error(e))
	return e
}

func (c *Client) envelope(ctx context.Context, resource models.Resource, q models.AnalyticsQuery, method, path string, query url.Values) (*models.Envelope, error) {
	body, err := c.fetch(ctx, resource, q, method, path, query, nil)
	if err != nil {
		return nil, err
	}
	env, err := models.ParseEnvelope(body)
	if err != nil {
		return nil, c.fail(&Error{Resource: resource, Base: q.Base(), Target: q.Target(), Kind: ErrDecode, Err: err})
	}
	return env, nil
}

// withMock swaps an outright failure for generated data in mock mode.
func withMock[T any](c *Client, resource models.Resource, err error, gen func(*mock.Generator) T) (T, error) {
	var zero T
	if c.mock == nil || !(errors.Is(err, ErrTransport) || errors.Is(err, ErrDecode)) {
		c.metrics.RecordClientResult(string(resource), domsvc.SourceError)
		return zero, err
	}
	c.metrics.RecordClientResult(string(resource), domsvc.SourceMock)
	c.log.Info("serving mock data", logger.String("resource", string(resource)))
	return gen(c.mock), nil
}

// attributes returns events[0].attributes, or the neutral attributes when the
// envelope has no usable event.
func (c *Client) attributes(resource models.Resource, q models.AnalyticsQuery, env *models.Envelope, neutral func(models.AnalyticsQuery) models.Attributes) models.Attributes {
	if attrs, ok := env.First(); ok {
		c.metrics.RecordClientResult(string(resource), domsvc.SourceUpstream)
		return attrs
	}
	c.log.Warn("dashboard data has unexpected shape, using empty result",
		logger.String("resource", string(resource)),
		logger.Pair(q.Base(), q.Target()),
		logger.Error(ErrShape))
	c.metrics.RecordClientResult(string(resource), domsvc.SourceFallback)
	return neutral(q)
}

func firstAttributes(env *models.Envelope) models.Attributes {
	a, _ := env.First()
	return a
}

// Prediction returns forecast and backtest points merged in time order.
func (c *Client) Prediction(ctx context.Context, q models.AnalyticsQuery) (models.Prediction, error) {
	env, err := c.envelope(ctx, models.ResourcePrediction, q, xhttp.MethodGet, "/api/prediction", pairValues(q))
	if err != nil {
		return withMock(c, models.ResourcePrediction, err, func(g *mock.Generator) models.Prediction {
			return models.PredictionFromAttributes(firstAttributes(g.Prediction(q)), q)
		})
	}
	return models.PredictionFromAttributes(c.attributes(models.ResourcePrediction, q, env, fallback.PredictionAttributes), q), nil
}

func (c *Client) Volatility(ctx context.Context, q models.AnalyticsQuery) (models.VolatilityAnalysis, error) {
	env, err := c.envelope(ctx, models.ResourceVolatility, q, xhttp.MethodGet, "/api/volatility", pairValues(q))
	if err != nil {
		return withMock(c, models.ResourceVolatility, err, func(g *mock.Generator) models.VolatilityAnalysis {
			return models.VolatilityFromAttributes(firstAttributes(g.Volatility(q)), q)
		})
	}
	return models.VolatilityFromAttributes(c.attributes(models.ResourceVolatility, q, env, fallback.VolatilityAttributes), q), nil
}

func (c *Client) Correlation(ctx context.Context, q models.AnalyticsQuery) (models.CorrelationAnalysis, error) {
	env, err := c.envelope(ctx, models.ResourceCorrelation, q, xhttp.MethodGet, "/api/correlation", pairValues(q))
	if err != nil {
		return withMock(c, models.ResourceCorrelation, err, func(g *mock.Generator) models.CorrelationAnalysis {
			return models.CorrelationFromAttributes(firstAttributes(g.Correlation(q)), q)
		})
	}
	return models.CorrelationFromAttributes(c.attributes(models.ResourceCorrelation, q, env, fallback.CorrelationAttributes), q), nil
}

// Anomalies accepts the flat proxy shape as well as an ADAGE envelope.
func (c *Client) Anomalies(ctx context.Context, q models.AnalyticsQuery) (models.AnomalyDetectionResult, error) {
	res := models.ResourceAnomaly
	body, err := c.fetch(ctx, res, q, xhttp.MethodGet, "/api/anomalies", pairValues(q), nil)
	if err == nil {
		var obj map[string]any
		if jerr := json.Unmarshal(body, &obj); jerr != nil || obj == nil {
			if jerr == nil {
				jerr = models.ErrMalformedEnvelope
			}
			err = c.fail(&Error{Resource: res, Base: q.Base(), Target: q.Target(), Kind: ErrDecode, Err: jerr})
		} else {
			return c.anomalies(q, models.Attributes(obj)), nil
		}
	}
	return withMock(c, res, err, func(g *mock.Generator) models.AnomalyDetectionResult {
		return models.AnomalyFromAttributes(firstAttributes(g.Anomalies(q)), q)
	})
}

func (c *Client) anomalies(q models.AnalyticsQuery, obj models.Attributes) models.AnomalyDetectionResult {
	res := models.ResourceAnomaly
	if obj.HasKey("events") {
		if attrs, ok := models.EnvelopeFromObject(obj).First(); ok {
			c.metrics.RecordClientResult(string(res), domsvc.SourceUpstream)
			return models.AnomalyFromAttributes(attrs, q)
		}
	} else if obj.HasKey("anomaly_points", "anomaly_count") {
		c.metrics.RecordClientResult(string(res), domsvc.SourceUpstream)
		return models.AnomalyFromAttributes(obj, q)
	}
	c.log.Warn("dashboard data has unexpected shape, using empty result",
		logger.String("resource", string(res)),
		logger.Pair(q.Base(), q.Target()),
		logger.Error(ErrShape))
	c.metrics.RecordClientResult(string(res), domsvc.SourceFallback)
	return fallback.Anomalies(q)
}

// News returns articles for a currency or an "A/B" pair.
func (c *Client) News(ctx context.Context, currency string, limit int) ([]models.NewsArticle, error) {
	q := models.NewAnalyticsQuery(currency, "", map[string]string{
		"currency": currency,
		"limit":    strconv.Itoa(limit),
	})
	env, err := c.envelope(ctx, models.ResourceNews, q, xhttp.MethodGet, "/api/currency-news", q.Values())
	if err != nil {
		return withMock(c, models.ResourceNews, err, func(g *mock.Generator) []models.NewsArticle {
			return models.NewsFromEnvelope(g.News(currency, limit))
		})
	}
	c.metrics.RecordClientResult(string(models.ResourceNews), domsvc.SourceUpstream)
	return models.NewsFromEnvelope(env), nil
}

// HistoricalRates returns the OHLC series in date order.
func (c *Client) HistoricalRates(ctx context.Context, q models.AnalyticsQuery) ([]models.HistoricalPoint, error) {
	env, err := c.envelope(ctx, models.ResourceHistorical, q, xhttp.MethodGet, "/api/historical-rates", pairValues(q))
	if err != nil {
		return withMock(c, models.ResourceHistorical, err, func(g *mock.Generator) []models.HistoricalPoint {
			return models.HistoricalFromAttributes(firstAttributes(g.Historical(q)))
		})
	}
	return models.HistoricalFromAttributes(c.attributes(models.ResourceHistorical, q, env, fallback.HistoricalAttributes)), nil
}

// ExchangeRate has no neutral value, so a response without a rate is an ErrShape error.
func (c *Client) ExchangeRate(ctx context.Context, base, target string) (float64, error) {
	res := models.ResourceExchangeRate
	q := models.NewAnalyticsQuery(base, target, nil)
	query := url.Values{"from": {q.Base()}, "to": {q.Target()}}
	body, err := c.fetch(ctx, res, q, xhttp.MethodGet, "/api/exchange-rate", query, nil)
	if err == nil {
		var obj map[string]any
		if jerr := json.Unmarshal(body, &obj); jerr != nil {
			err = c.fail(&Error{Resource: res, Base: q.Base(), Target: q.Target(), Kind: ErrDecode, Err: jerr})
		} else if rate, ok := models.RateFromAttributes(obj); ok {
			c.metrics.RecordClientResult(string(res), domsvc.SourceUpstream)
			return rate, nil
		} else {
			c.metrics.RecordClientResult(string(res), domsvc.SourceError)
			return 0, c.fail(&Error{Resource: res, Base: q.Base(), Target: q.Target(), Kind: ErrShape})
		}
	}
	return withMock(c, res, err, func(g *mock.Generator) float64 {
		return g.Rate(q.Base(), q.Target())
	})
}

// RegisterAlert submits an alert; there is no mock for writes.
func (c *Client) RegisterAlert(ctx context.Context, a models.AlertPayload) (map[string]any, error) {
	res := models.ResourceAlert
	q := models.NewAnalyticsQuery(a.Base, a.Target, nil)
	body, err := c.fetch(ctx, res, q, xhttp.MethodPost, "/api/alerts/register", nil, a)
	if err != nil {
		c.metrics.RecordClientResult(string(res), domsvc.SourceError)
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		c.metrics.RecordClientResult(string(res), domsvc.SourceError)
		return nil, c.fail(&Error{Resource: res, Base: q.Base(), Target: q.Target(), Kind: ErrDecode, Err: fmt.Errorf("decode alert response: %w", err)})
	}
	c.metrics.RecordClientResult(string(res), domsvc.SourceUpstream)
	return out, nil
}

var _ domsvc.DashboardReader = (*Client)(nil)
