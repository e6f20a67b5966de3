package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"FxDash/internal/domain/models"
	"FxDash/internal/services/mock"
	xhttp "FxDash/pkg/http"
)

type route struct {
	status int
	body   string
}

// proxyStub serves canned answers per path and keeps the last query and body per path.
type proxyStub struct {
	mu     sync.Mutex
	routes map[string]route
	query  map[string]url.Values
	bodies map[string][]byte
}

func newProxyStub(t *testing.T, routes map[string]route) (*proxyStub, *httptest.Server) {
	s := &proxyStub{routes: routes, query: map[string]url.Values{}, bodies: map[string][]byte{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.query[r.URL.Path] = r.URL.Query()
		var raw json.RawMessage
		if json.NewDecoder(r.Body).Decode(&raw) == nil {
			s.bodies[r.URL.Path] = raw
		}
		rt, ok := s.routes[r.URL.Path]
		s.mu.Unlock()
		if !ok {
			rt = route{status: http.StatusNotFound, body: `{"error":"not found"}`}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(rt.status)
		_, _ = w.Write([]byte(rt.body))
	}))
	t.Cleanup(srv.Close)
	return s, srv
}

func (s *proxyStub) lastQuery(path string) url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query[path]
}

func newTestClient(baseURL string, useMock bool) *Client {
	gen := mock.NewGenerator(mock.WithRand(rand.New(rand.NewPCG(7, 11))))
	return NewClient(Options{BaseURL: baseURL, Timeout: 2 * time.Second, UseMockData: useMock}, nil, gen, nil, nil)
}

func TestPredictionCoercesAndMerges(t *testing.T) {
	body := `{"events":[{"attributes":{
		"base_currency":"USD","target_currency":"AUD","current_rate":1.51,
		"confidence_score":"82",
		"prediction_values":[
			{"timestamp":"2024-06-03T00:00:00Z","mean":1.53,"lower_bound":1.50,"upper_bound":1.56},
			{"timestamp":"2024-06-02T00:00:00Z","mean":1.52}
		],
		"backtest_values":[{"timestamp":"2024-05-31T00:00:00Z","mean":1.49}]
	}}]}`
	stub, srv := newProxyStub(t, map[string]route{"/api/prediction": {200, body}})
	c := newTestClient(srv.URL, false)

	q := models.NewAnalyticsQuery("USD", "AUD", map[string]string{"backtest": "true"})
	p, err := c.Prediction(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if p.ConfidenceScore != 82 {
		t.Fatalf("confidence = %v, want 82", p.ConfidenceScore)
	}
	if len(p.PredictionValues) != 3 {
		t.Fatalf("expected 3 points, got %d", len(p.PredictionValues))
	}
	wantTS := []string{"2024-05-31T00:00:00Z", "2024-06-02T00:00:00Z", "2024-06-03T00:00:00Z"}
	wantHist := []bool{true, false, false}
	for i, v := range p.PredictionValues {
		if v.Timestamp != wantTS[i] || v.IsHistorical != wantHist[i] {
			t.Fatalf("point %d = %+v", i, v)
		}
	}
	if p.PredictionValues[1].LowerBound != 1.52 || p.PredictionValues[1].UpperBound != 1.52 {
		t.Fatalf("missing bounds should default to the mean: %+v", p.PredictionValues[1])
	}
	sent := stub.lastQuery("/api/prediction")
	if sent.Get("base") != "USD" || sent.Get("target") != "AUD" || sent.Get("backtest") != "true" {
		t.Fatalf("unexpected query %v", sent)
	}
}

func TestCorrelationEmptyFactors(t *testing.T) {
	body := `{"events":[{"attributes":{"base_currency":"EUR","target_currency":"USD","influencing_factors":[]}}]}`
	_, srv := newProxyStub(t, map[string]route{"/api/correlation": {200, body}})
	c := newTestClient(srv.URL, false)

	res, err := c.Correlation(context.Background(), models.NewAnalyticsQuery("EUR", "USD", nil))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if res.InfluencingFactors == nil || len(res.InfluencingFactors) != 0 {
		t.Fatalf("factors = %#v, want empty slice", res.InfluencingFactors)
	}
	m := res.Correlations
	if m.NewsSentiment == nil || m.EconomicIndicators == nil || m.VolatilityNews == nil {
		t.Fatalf("correlation maps must not be nil: %+v", m)
	}
	if res.AnalysisPeriodDays != 90 {
		t.Fatalf("days = %d", res.AnalysisPeriodDays)
	}
	b, _ := json.Marshal(res)
	var out map[string]any
	_ = json.Unmarshal(b, &out)
	if f, ok := out["influencingFactors"].([]any); !ok || len(f) != 0 {
		t.Fatalf("influencingFactors must serialize as []: %s", b)
	}
}

func TestShapeMismatchFallsBackToNeutral(t *testing.T) {
	_, srv := newProxyStub(t, map[string]route{"/api/volatility": {200, `{"events":[]}`}})
	c := newTestClient(srv.URL, false)

	res, err := c.Volatility(context.Background(), models.NewAnalyticsQuery("GBP", "USD", map[string]string{"days": "14"}))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if res.BaseCurrency != "GBP" || res.VolatilityLevel != models.VolatilityNormal || res.Trend != models.TrendStable || res.AnalysisPeriodDays != 14 {
		t.Fatalf("unexpected neutral result %+v", res)
	}
}

func TestProxyErrorIsTransportKind(t *testing.T) {
	_, srv := newProxyStub(t, map[string]route{"/api/volatility": {500, `{"error":"Failed to fetch volatility data: 500"}`}})
	c := newTestClient(srv.URL, false)

	_, err := c.Volatility(context.Background(), models.NewAnalyticsQuery("", "", nil))
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	var e *Error
	if !errors.As(err, &e) || e.Status != 500 || e.Resource != models.ResourceVolatility || e.Base != "USD" {
		t.Fatalf("unexpected error details %#v", err)
	}
	if e.Err == nil || e.Err.Error() != "Failed to fetch volatility data: 500" {
		t.Fatalf("proxy message lost: %v", e.Err)
	}
}

func TestDecodeError(t *testing.T) {
	_, srv := newProxyStub(t, map[string]route{"/api/prediction": {200, `not json`}})
	c := newTestClient(srv.URL, false)

	_, err := c.Prediction(context.Background(), models.NewAnalyticsQuery("", "", nil))
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

// refusingTransport fails every round trip as if the proxy were down.
type refusingTransport struct{}

func (refusingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func newRefusingClient(useMock bool) *Client {
	gen := mock.NewGenerator(mock.WithRand(rand.New(rand.NewPCG(7, 11))))
	hc := xhttp.NewClient(xhttp.WithTransport(refusingTransport{}))
	return NewClient(Options{BaseURL: "http://proxy.invalid", Timeout: 2 * time.Second, UseMockData: useMock}, hc, gen, nil, nil)
}

func TestMockModeOnTransportFailure(t *testing.T) {
	q := models.NewAnalyticsQuery("EUR", "USD", nil)

	off := newRefusingClient(false)
	if _, err := off.Prediction(context.Background(), q); !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport without mock mode, got %v", err)
	}

	on := newRefusingClient(true)
	p, err := on.Prediction(context.Background(), q)
	if err != nil {
		t.Fatalf("mock mode must not fail: %v", err)
	}
	if p.ConfidenceScore < mock.MinConfidence || p.ConfidenceScore > mock.MaxConfidence || len(p.PredictionValues) == 0 {
		t.Fatalf("unexpected mock prediction %+v", p)
	}
	v, err := on.Volatility(context.Background(), q)
	if err != nil || v.CurrentVolatility < mock.MinVolatility || v.CurrentVolatility > mock.MaxVolatility {
		t.Fatalf("unexpected mock volatility %+v %v", v, err)
	}
	news, err := on.News(context.Background(), "EUR/USD", 6)
	if err != nil || len(news) != 6 {
		t.Fatalf("unexpected mock news: %d articles, %v", len(news), err)
	}
	if rate, err := on.ExchangeRate(context.Background(), "EUR", "USD"); err != nil || rate <= 0 {
		t.Fatalf("unexpected mock rate %v %v", rate, err)
	}
	if _, err := on.RegisterAlert(context.Background(), models.AlertPayload{Base: "EUR", Target: "USD"}); !errors.Is(err, ErrTransport) {
		t.Fatalf("alert registration is never mocked, got %v", err)
	}
}

func TestMockModeKeepsProxyErrors(t *testing.T) {
	_, srv := newProxyStub(t, map[string]route{"/api/exchange-rate": {200, `{"base":"EUR","target":"USD"}`}})
	c := newTestClient(srv.URL, true)

	_, err := c.ExchangeRate(context.Background(), "EUR", "USD")
	if !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape, got %v", err)
	}
}

func TestExchangeRate(t *testing.T) {
	stub, srv := newProxyStub(t, map[string]route{"/api/exchange-rate": {200, `{"base":"GBP","target":"JPY","rate":191.2}`}})
	c := newTestClient(srv.URL, false)

	rate, err := c.ExchangeRate(context.Background(), "gbp", "jpy")
	if err != nil || rate != 191.2 {
		t.Fatalf("rate = %v, err = %v", rate, err)
	}
	q := stub.lastQuery("/api/exchange-rate")
	if q.Get("from") != "GBP" || q.Get("to") != "JPY" {
		t.Fatalf("unexpected query %v", q)
	}
}

func TestAnomaliesShapes(t *testing.T) {
	flat := `{"base":"USD","target":"JPY","anomaly_count":1,"analysis_period_days":30,"anomaly_points":[{"timestamp":"2024-01-02","rate":151.2,"z_score":-3.2,"percent_change":-2.4}]}`
	enveloped := `{"events":[{"attributes":{"anomaly_points":[{"date":"2024-01-02","rate":151.2,"z_score":-3.2,"percent_change":-2.4}]}}]}`
	for name, body := range map[string]string{"flat": flat, "envelope": enveloped} {
		_, srv := newProxyStub(t, map[string]route{"/api/anomalies": {200, body}})
		c := newTestClient(srv.URL, false)
		res, err := c.Anomalies(context.Background(), models.NewAnalyticsQuery("USD", "JPY", map[string]string{"days": "30"}))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if res.AnomalyCount != 1 || len(res.AnomalyPoints) != 1 {
			t.Fatalf("%s: unexpected result %+v", name, res)
		}
		if pt := res.AnomalyPoints[0]; pt.Timestamp != "2024-01-02" || pt.ZScore != -3.2 {
			t.Fatalf("%s: unexpected point %+v", name, pt)
		}
	}
}

func TestAnomaliesUnknownShape(t *testing.T) {
	_, srv := newProxyStub(t, map[string]route{"/api/anomalies": {200, `{"status":"ok"}`}})
	c := newTestClient(srv.URL, false)
	res, err := c.Anomalies(context.Background(), models.NewAnalyticsQuery("USD", "JPY", map[string]string{"days": "21"}))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if res.AnomalyPoints == nil || res.AnomalyCount != 0 || res.AnalysisPeriodDays != 21 {
		t.Fatalf("unexpected neutral anomalies %+v", res)
	}
}

func TestHistoricalRatesSorted(t *testing.T) {
	body := `{"event":[{"attributes":{"data":[
		{"date":"2024-06-02","open":1.1,"high":1.2,"low":1.0,"close":1.15},
		{"date":"2024-06-01","close":1.05}
	]}}]}`
	_, srv := newProxyStub(t, map[string]route{"/api/historical-rates": {200, body}})
	c := newTestClient(srv.URL, false)

	pts, err := c.HistoricalRates(context.Background(), models.NewAnalyticsQuery("EUR", "USD", nil))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(pts) != 2 || pts[0].Date != "2024-06-01" || pts[0].Open != 1.05 || pts[1].High != 1.2 {
		t.Fatalf("unexpected series %+v", pts)
	}
}

func TestNews(t *testing.T) {
	body := `{"events":[{"event_id":"n1","time_object":{"timestamp":"2024-06-01T08:00:00Z"},"attributes":{"title":"ECB holds","source":"Wire","currency":"EUR","sentiment_score":0.2}}]}`
	stub, srv := newProxyStub(t, map[string]route{"/api/currency-news": {200, body}})
	c := newTestClient(srv.URL, false)

	news, err := c.News(context.Background(), "EUR", 5)
	if err != nil || len(news) != 1 {
		t.Fatalf("unexpected news %+v %v", news, err)
	}
	if a := news[0]; a.ID != "n1" || a.PublishedAt != "2024-06-01T08:00:00Z" || a.SentimentScore == nil || *a.SentimentScore != 0.2 {
		t.Fatalf("unexpected article %+v", a)
	}
	if q := stub.lastQuery("/api/currency-news"); q.Get("currency") != "EUR" || q.Get("limit") != "5" {
		t.Fatalf("unexpected query %v", q)
	}
}

func TestRegisterAlert(t *testing.T) {
	stub, srv := newProxyStub(t, map[string]route{"/api/alerts/register": {201, `{"alert_id":"a-9"}`}})
	c := newTestClient(srv.URL, false)

	a := models.AlertPayload{Base: "USD", Target: "EUR", AlertType: "change", Email: "x@y.io", Threshold: 2}
	out, err := c.RegisterAlert(context.Background(), a)
	if err != nil || out["alert_id"] != "a-9" {
		t.Fatalf("unexpected outcome %v %v", out, err)
	}
	stub.mu.Lock()
	defer stub.mu.Unlock()
	var sent models.AlertPayload
	if err := json.Unmarshal(stub.bodies["/api/alerts/register"], &sent); err != nil || sent != a {
		t.Fatalf("unexpected payload %s", stub.bodies["/api/alerts/register"])
	}
}
