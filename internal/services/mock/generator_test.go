package mock

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"
	"time"

	"FxDash/internal/domain/models"
)

func newTestGenerator(seed uint64) *Generator {
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return NewGenerator(
		WithRand(rand.New(rand.NewPCG(seed, seed+1))),
		WithClock(func() time.Time { return fixed }),
	)
}

func TestRateTableAndInverse(t *testing.T) {
	g := newTestGenerator(1)
	if got := g.Rate("USD", "AUD"); got != 1.52 {
		t.Fatalf("USD/AUD = %v", got)
	}
	if got := g.Rate("GBP", "EUR"); got != 1.1765 {
		t.Fatalf("GBP/EUR = %v", got)
	}
	if got := g.Rate("EUR", "EUR"); got != 1 {
		t.Fatalf("EUR/EUR = %v", got)
	}
	for i := 0; i < 100; i++ {
		if r := g.Rate("NZD", "SEK"); r < MinRate || r > MaxRate {
			t.Fatalf("unknown pair rate out of bounds: %v", r)
		}
	}
}

func TestGeneratedValuesWithinBounds(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		g := newTestGenerator(seed)
		q := models.NewAnalyticsQuery("NZD", "SEK", map[string]string{"days": "30", "backtest": "true"})

		pa, _ := g.Prediction(q).First()
		p := models.PredictionFromAttributes(pa, q)
		if p.ConfidenceScore < MinConfidence || p.ConfidenceScore > MaxConfidence {
			t.Fatalf("confidence out of bounds: %v", p.ConfidenceScore)
		}
		if p.CurrentRate < MinRate || p.CurrentRate > MaxRate {
			t.Fatalf("rate out of bounds: %v", p.CurrentRate)
		}
		if len(p.PredictionValues) != 14 {
			t.Fatalf("expected 7 forecast + 7 backtest points, got %d", len(p.PredictionValues))
		}

		va, _ := g.Volatility(q).First()
		v := models.VolatilityFromAttributes(va, q)
		if v.CurrentVolatility < MinVolatility || v.CurrentVolatility > MaxVolatility ||
			v.AverageVolatility < MinVolatility || v.AverageVolatility > MaxVolatility {
			t.Fatalf("volatility out of bounds: %+v", v)
		}
		if v.VolatilityLevel != models.VolatilityLevel(v.CurrentVolatility) {
			t.Fatalf("level %s does not match %v", v.VolatilityLevel, v.CurrentVolatility)
		}

		ca, _ := g.Correlation(q).First()
		c := models.CorrelationFromAttributes(ca, q)
		for _, f := range c.InfluencingFactors {
			if f.Correlation < -MaxCorr || f.Correlation > MaxCorr {
				t.Fatalf("factor correlation out of bounds: %+v", f)
			}
		}
		for _, m := range []map[string]float64{c.Correlations.NewsSentiment, c.Correlations.EconomicIndicators, c.Correlations.VolatilityNews} {
			for k, val := range m {
				if val < -MaxCorr || val > MaxCorr {
					t.Fatalf("%s out of bounds: %v", k, val)
				}
			}
		}

		aa, _ := g.Anomalies(q).First()
		a := models.AnomalyFromAttributes(aa, q)
		if a.AnomalyCount < 1 || a.AnomalyCount > 4 || a.AnomalyCount != len(a.AnomalyPoints) {
			t.Fatalf("unexpected anomaly count %d (%d points)", a.AnomalyCount, len(a.AnomalyPoints))
		}
		for _, pt := range a.AnomalyPoints {
			z := pt.ZScore
			if z < 0 {
				z = -z
			}
			if z < MinZScore || z > MaxZScore {
				t.Fatalf("z-score out of bounds: %v", pt.ZScore)
			}
			if pt.PercentChange < MinPctChange || pt.PercentChange > MaxPctChange {
				t.Fatalf("percent change out of bounds: %v", pt.PercentChange)
			}
		}
	}
}

func TestCorrelationUsesPairFactors(t *testing.T) {
	g := newTestGenerator(3)
	q := models.NewAnalyticsQuery("USD", "JPY", nil)
	a, _ := g.Correlation(q).First()
	c := models.CorrelationFromAttributes(a, q)
	if len(c.InfluencingFactors) != 8 {
		t.Fatalf("expected 3 pair + 5 common factors, got %d", len(c.InfluencingFactors))
	}
	found := false
	for _, f := range c.InfluencingFactors {
		if f.Factor == "Bank of Japan Policy" {
			found = true
		}
	}
	if !found {
		t.Fatalf("pair-specific factor missing: %+v", c.InfluencingFactors)
	}
	for i := 1; i < len(c.InfluencingFactors); i++ {
		prev, cur := c.InfluencingFactors[i-1].Correlation, c.InfluencingFactors[i].Correlation
		if abs(prev) < abs(cur) {
			t.Fatalf("factors not ordered by strength at %d", i)
		}
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func TestNewsSplitsPair(t *testing.T) {
	g := newTestGenerator(4)
	env := g.News("usd/eur", 6)
	news := models.NewsFromEnvelope(env)
	if len(news) != 6 {
		t.Fatalf("expected 6 articles, got %d", len(news))
	}
	counts := map[string]int{}
	for _, n := range news {
		counts[n.Currency]++
		if !strings.Contains(n.Title, n.Currency) {
			t.Fatalf("title %q does not mention %s", n.Title, n.Currency)
		}
		if n.ID == "" || n.PublishedAt == "" {
			t.Fatalf("article missing id or timestamp: %+v", n)
		}
	}
	if counts["USD"] != 3 || counts["EUR"] != 3 {
		t.Fatalf("unexpected split %v", counts)
	}
	if env.DatasetType != "currency_news" || env.DataSource == "" {
		t.Fatalf("unexpected envelope header %+v", env)
	}
}

func TestNewsLimitCappedByTemplates(t *testing.T) {
	g := newTestGenerator(5)
	if got := len(g.News("GBP", 20).Events); got != len(newsTemplates) {
		t.Fatalf("expected %d articles, got %d", len(newsTemplates), got)
	}
}

func TestHistoricalSeriesChronological(t *testing.T) {
	g := newTestGenerator(6)
	q := models.NewAnalyticsQuery("EUR", "GBP", map[string]string{"days": "10"})
	a, _ := g.Historical(q).First()
	pts := models.HistoricalFromAttributes(a)
	if len(pts) != 10 || pts[0].Date != "2024-05-23" || pts[9].Date != "2024-06-01" {
		t.Fatalf("unexpected series bounds: %d %s..%s", len(pts), pts[0].Date, pts[len(pts)-1].Date)
	}
	for _, p := range pts {
		if p.Low > p.Open || p.Low > p.Close || p.High < p.Open || p.High < p.Close {
			t.Fatalf("inconsistent candle %+v", p)
		}
	}
}

func TestHugeWindowsAreClamped(t *testing.T) {
	g := newTestGenerator(8)
	huge := strconv.Itoa(1 << 60)

	q := models.NewAnalyticsQuery("USD", "JPY", map[string]string{"days": huge})
	a, _ := g.Anomalies(q).First()
	res := models.AnomalyFromAttributes(a, q)
	if res.AnalysisPeriodDays != 365 || len(res.AnomalyPoints) < 1 || len(res.AnomalyPoints) > 4 {
		t.Fatalf("unexpected anomalies %+v", res)
	}
	seen := map[string]bool{}
	for _, p := range res.AnomalyPoints {
		if seen[p.Timestamp] {
			t.Fatalf("duplicate anomaly day %s", p.Timestamp)
		}
		seen[p.Timestamp] = true
	}

	if got := len(g.News("USD/EUR", 1<<60).Events); got != 2*len(newsTemplates) {
		t.Fatalf("expected %d articles, got %d", 2*len(newsTemplates), got)
	}

	hq := models.NewAnalyticsQuery("EUR", "GBP", map[string]string{"days": huge})
	ha, _ := g.Historical(hq).First()
	if n := len(models.HistoricalFromAttributes(ha)); n != 365 {
		t.Fatalf("expected 365 days, got %d", n)
	}

	pq := models.NewAnalyticsQuery("EUR", "GBP", map[string]string{"forecast_horizon": huge})
	pa, _ := g.Prediction(pq).First()
	if n := len(models.PredictionFromAttributes(pa, pq).PredictionValues); n != 90 {
		t.Fatalf("expected 90 forecast points, got %d", n)
	}
}

func TestAnomaliesSingleDayWindow(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		g := newTestGenerator(seed)
		q := models.NewAnalyticsQuery("USD", "JPY", map[string]string{"days": "1"})
		a, _ := g.Anomalies(q).First()
		if n := len(a.Objects("anomaly_points")); n != 1 {
			t.Fatalf("seed %d: expected 1 point, got %d", seed, n)
		}
	}
}
