package models

import (
	"encoding/json"
	"testing"
)

func mustEnvelope(t *testing.T, s string) *Envelope {
	t.Helper()
	env, err := ParseEnvelope([]byte(s))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return env
}

func TestPredictionConfidenceFromString(t *testing.T) {
	env := mustEnvelope(t, `{"events":[{"attributes":{"base_currency":"USD","target_currency":"AUD","current_rate":1.52,"confidence_score":"82","prediction_values":[{"timestamp":"2024-01-01T00:00:00Z","mean":1.53,"lower_bound":1.50,"upper_bound":1.56}]}}]}`)
	a, _ := env.First()
	p := PredictionFromAttributes(a, NewAnalyticsQuery("USD", "AUD", nil))
	if p.ConfidenceScore != 82 {
		t.Fatalf("confidence = %v", p.ConfidenceScore)
	}
	if p.CurrentRate != 1.52 || len(p.PredictionValues) != 1 || p.PredictionValues[0].UpperBound != 1.56 {
		t.Fatalf("unexpected prediction %+v", p)
	}
	if p.InfluencingFactors == nil {
		t.Fatalf("influencing factors must not be nil")
	}
}

func TestPredictionDefaultsConfidence(t *testing.T) {
	p := PredictionFromAttributes(Attributes{"confidence_score": "high"}, NewAnalyticsQuery("", "", nil))
	if p.ConfidenceScore != DefaultPredictionConfidence {
		t.Fatalf("confidence = %v", p.ConfidenceScore)
	}
	if p.BaseCurrency != DefaultBase || p.TargetCurrency != DefaultTarget {
		t.Fatalf("expected query pair as default, got %s/%s", p.BaseCurrency, p.TargetCurrency)
	}
}

func TestPredictionMergesBacktestInOrder(t *testing.T) {
	a := Attributes{
		"prediction_values": []any{
			map[string]any{"timestamp": "2024-01-03", "mean": 3.0},
			map[string]any{"timestamp": "garbage", "mean": 9.0},
			map[string]any{"timestamp": "2024-01-02", "mean": 2.0},
		},
		"backtest_values": []any{
			map[string]any{"timestamp": "2023-12-31T00:00:00Z", "mean": 0.5},
			map[string]any{"timestamp": "2024-01-01", "mean": 1.0},
		},
	}
	p := PredictionFromAttributes(a, NewAnalyticsQuery("", "", nil))
	want := []struct {
		ts   string
		hist bool
	}{
		{"2023-12-31T00:00:00Z", true},
		{"2024-01-01", true},
		{"2024-01-02", false},
		{"2024-01-03", false},
		{"garbage", false},
	}
	if len(p.PredictionValues) != len(want) {
		t.Fatalf("got %d points", len(p.PredictionValues))
	}
	for i, w := range want {
		got := p.PredictionValues[i]
		if got.Timestamp != w.ts || got.IsHistorical != w.hist {
			t.Fatalf("point %d = %+v, want %+v", i, got, w)
		}
	}
	// missing bounds default to the mean
	if p.PredictionValues[1].LowerBound != 1.0 {
		t.Fatalf("lower bound = %v", p.PredictionValues[1].LowerBound)
	}
}

func TestCorrelationEmptyFactors(t *testing.T) {
	env := mustEnvelope(t, `{"events":[{"attributes":{"base_currency":"EUR","target_currency":"USD","influencing_factors":[],"confidence_score":"77.5","correlations":{"news_sentiment":{"positive_news":0.3,"bad":"x"}}}}]}`)
	a, _ := env.First()
	c := CorrelationFromAttributes(a, NewAnalyticsQuery("EUR", "USD", nil))
	if c.InfluencingFactors == nil || len(c.InfluencingFactors) != 0 {
		t.Fatalf("expected empty factor list, got %#v", c.InfluencingFactors)
	}
	b, _ := json.Marshal(c)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	if f, ok := m["influencingFactors"].([]any); !ok || len(f) != 0 {
		t.Fatalf("influencingFactors must marshal as [], got %s", b)
	}
	if c.ConfidenceScore != 77.5 || c.AnalysisPeriodDays != 90 {
		t.Fatalf("unexpected correlation %+v", c)
	}
	if c.Correlations.NewsSentiment["positive_news"] != 0.3 || len(c.Correlations.NewsSentiment) != 1 {
		t.Fatalf("unexpected news sentiment %v", c.Correlations.NewsSentiment)
	}
	if c.Correlations.EconomicIndicators == nil || c.Correlations.VolatilityNews == nil {
		t.Fatalf("correlation maps must not be nil")
	}
}

func TestVolatilityNormalizesEnums(t *testing.T) {
	v := VolatilityFromAttributes(Attributes{
		"current_volatility": "12.5",
		"volatility_level":   "high",
		"trend":              "sideways",
	}, NewAnalyticsQuery("", "", map[string]string{"days": "14"}))
	if v.VolatilityLevel != VolatilityHigh || v.Trend != TrendStable {
		t.Fatalf("unexpected enums %s %s", v.VolatilityLevel, v.Trend)
	}
	if v.CurrentVolatility != 12.5 || v.AnalysisPeriodDays != 14 || v.ConfidenceScore != nil {
		t.Fatalf("unexpected volatility %+v", v)
	}
}

func TestVolatilityLevel(t *testing.T) {
	cases := map[float64]string{5: VolatilityNormal, 9.99: VolatilityNormal, 10: VolatilityHigh, 14.9: VolatilityHigh, 15: VolatilityExtreme}
	for in, want := range cases {
		if got := VolatilityLevel(in); got != want {
			t.Fatalf("VolatilityLevel(%v) = %s, want %s", in, got, want)
		}
	}
}

func TestAnomalyFromEnvelopePointsList(t *testing.T) {
	env := mustEnvelope(t, `{"events":[{"attributes":{"anomaly_count":7,"analysis_period_days":14,"anomaly_points":[{"timestamp":"2024-01-01","rate":"1.1","z_score":3.2,"percent_change":4}]}}]}`)
	r := AnomalyFromEnvelope(env, NewAnalyticsQuery("usd", "jpy", map[string]string{"days": "30"}))
	if r.Base != "USD" || r.Target != "JPY" || r.AnomalyCount != 1 || r.AnalysisPeriodDays != 14 {
		t.Fatalf("unexpected result %+v", r)
	}
	if r.AnomalyPoints[0].Rate != 1.1 || r.AnomalyPoints[0].ZScore != 3.2 {
		t.Fatalf("unexpected point %+v", r.AnomalyPoints[0])
	}
}

func TestAnomalyFromEnvelopePerEvent(t *testing.T) {
	env := mustEnvelope(t, `{"events":[
		{"time_object":{"timestamp":"2024-02-01T00:00:00Z"},"attribute":{"rate":1.2,"z_score":-2.5,"percent_change":3}},
		{"time_object":{"timestamp":"2024-02-03T00:00:00Z"},"attributes":{"rate":1.3,"z_score":2.1,"percent_change":2}}
	]}`)
	r := AnomalyFromEnvelope(env, NewAnalyticsQuery("USD", "JPY", map[string]string{"days": "21"}))
	if r.AnomalyCount != 2 || len(r.AnomalyPoints) != 2 || r.AnalysisPeriodDays != 21 {
		t.Fatalf("unexpected result %+v", r)
	}
	if r.AnomalyPoints[0].Timestamp != "2024-02-01T00:00:00Z" || r.AnomalyPoints[0].ZScore != -2.5 {
		t.Fatalf("unexpected point %+v", r.AnomalyPoints[0])
	}
}

func TestNewsFromEnvelope(t *testing.T) {
	env := mustEnvelope(t, `{"events":[{"event_id":"n1","time_object":{"timestamp":"2024-05-01T10:00:00Z"},"attributes":{"title":"USD up","source":"Reuters","sentiment_score":"0.4","sentiment_label":"bullish","currency":"USD"}}]}`)
	news := NewsFromEnvelope(env)
	if len(news) != 1 {
		t.Fatalf("got %d articles", len(news))
	}
	n := news[0]
	if n.ID != "n1" || n.PublishedAt != "2024-05-01T10:00:00Z" || n.SentimentScore == nil || *n.SentimentScore != 0.4 {
		t.Fatalf("unexpected article %+v", n)
	}
	if got := NewsFromEnvelope(nil); got == nil || len(got) != 0 {
		t.Fatalf("nil envelope must give an empty list")
	}
}

func TestHistoricalSortedByDate(t *testing.T) {
	pts := HistoricalFromAttributes(Attributes{"data": []any{
		map[string]any{"date": "2024-01-02", "open": 1.0, "high": 1.2, "low": 0.9, "close": 1.1},
		map[string]any{"date": "2024-01-01", "close": "1.05"},
	}})
	if len(pts) != 2 || pts[0].Date != "2024-01-01" || pts[0].Open != 1.05 || pts[1].High != 1.2 {
		t.Fatalf("unexpected series %+v", pts)
	}
}

func TestRateFromAttributes(t *testing.T) {
	if r, ok := RateFromAttributes(Attributes{"rate": 1.52}); !ok || r != 1.52 {
		t.Fatalf("expected 1.52, got %v %v", r, ok)
	}
	for _, a := range []Attributes{nil, {}, {"rate": "n/a"}, {"rate": 0.0}, {"rate": -1.0}} {
		if _, ok := RateFromAttributes(a); ok {
			t.Fatalf("expected failure for %v", a)
		}
	}
}

// A well-formed envelope survives normalization with every value intact.
func TestCorrelationRoundTripPreservesValues(t *testing.T) {
	env := mustEnvelope(t, `{"events":[{"attributes":{
		"base_currency":"GBP","target_currency":"USD","confidence_score":81,"data_completeness":0.9,"analysis_period_days":60,
		"influencing_factors":[{"factor":"GDP","correlation":-0.4,"actual_correlation":-0.41,"type":"economic"}],
		"correlations":{"news_sentiment":{"a":0.1},"economic_indicators":{"b":0.2},"volatility_news":{"c":0.3}}}}]}`)
	a, _ := env.First()
	c := CorrelationFromAttributes(a, NewAnalyticsQuery("", "", nil))
	if c.BaseCurrency != "GBP" || c.TargetCurrency != "USD" || c.ConfidenceScore != 81 || c.DataCompleteness != 0.9 || c.AnalysisPeriodDays != 60 {
		t.Fatalf("unexpected header fields %+v", c)
	}
	f := c.InfluencingFactors[0]
	if f.Factor != "GDP" || f.Correlation != -0.4 || f.ActualCorrelation == nil || *f.ActualCorrelation != -0.41 || f.Type != "economic" {
		t.Fatalf("unexpected factor %+v", f)
	}
	if c.Correlations.EconomicIndicators["b"] != 0.2 || c.Correlations.VolatilityNews["c"] != 0.3 {
		t.Fatalf("unexpected maps %+v", c.Correlations)
	}
}

func TestOversizedPeriodFallsBackToQuery(t *testing.T) {
	q := NewAnalyticsQuery("USD", "AUD", map[string]string{"days": "14"})
	v := VolatilityFromAttributes(Attributes{"analysis_period_days": 1e30}, q)
	if v.AnalysisPeriodDays != 14 {
		t.Fatalf("analysis period = %d, want 14", v.AnalysisPeriodDays)
	}
}
