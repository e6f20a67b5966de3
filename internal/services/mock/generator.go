package mock

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"

	"FxDash/internal/domain/models"
	"FxDash/pkg/util"

	"github.com/google/uuid"
)

// Value bounds for synthesized data.
const (
	MinRate       = 0.5
	MaxRate       = 2.5
	MinConfidence = 70.0
	MaxConfidence = 95.0
	MinVolatility = 5.0
	MaxVolatility = 20.0
	MaxCorr       = 0.8
	MinZScore     = 2.0
	MaxZScore     = 4.0
	MinPctChange  = 2.0
	MaxPctChange  = 8.0
)

const dataSource = "Mock Data"

// Window caps for generated series.
const (
	maxHorizonDays = 90
	maxWindowDays  = 365
)

// Generator synthesizes ADAGE envelopes shaped like real analytics payloads.
// Safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand injects the random source.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rnd = r }
}

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// NewGenerator creates a generator seeded from the wall clock unless overridden.
func NewGenerator(opts ...Option) *Generator {
	seed := uint64(time.Now().UnixNano())
	g := &Generator{
		rnd: rand.New(rand.NewPCG(seed, seed>>1|1)),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rnd.Float64()*(hi-lo)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// Rate returns the table rate for a known pair (or its inverse), otherwise a
// random rate within [MinRate, MaxRate].
func (g *Generator) Rate(base, target string) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rate(base, target)
}

func (g *Generator) rate(base, target string) float64 {
	if base == target {
		return 1
	}
	if r, ok := knownRates[base+target]; ok {
		return r
	}
	if r, ok := knownRates[target+base]; ok {
		return math.Round(1/r*10000) / 10000
	}
	return g.uniform(MinRate, MaxRate)
}

func (g *Generator) envelope(datasetType string, events ...models.Event) *models.Envelope {
	return &models.Envelope{
		DataSource:  dataSource,
		DatasetType: datasetType,
		DatasetID:   uuid.NewString(),
		TimeObject:  timeObject(g.now()),
		Events:      events,
	}
}

func (g *Generator) event(eventType string, at time.Time, attrs models.Attributes) models.Event {
	return models.Event{
		TimeObject: timeObject(at),
		EventType:  eventType,
		EventID:    uuid.NewString(),
		Attributes: attrs,
	}
}

func timeObject(t time.Time) models.Attributes {
	return models.Attributes{
		"timestamp":     t.UTC().Format(time.RFC3339),
		"duration":      0,
		"duration_unit": "second",
		"timezone":      "UTC",
	}
}

// ExchangeRate synthesizes a spot rate envelope.
func (g *Generator) ExchangeRate(q models.AnalyticsQuery) *models.Envelope {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()
	return g.envelope("currency_rate", g.event("currency_rate", now, models.Attributes{
		"base":   q.Base(),
		"target": q.Target(),
		"rate":   g.rate(q.Base(), q.Target()),
	}))
}

// Prediction synthesizes a forecast over forecast_horizon days (default 7), plus
// backtest points when backtest is requested.
func (g *Generator) Prediction(q models.AnalyticsQuery) *models.Envelope {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	horizon := min(q.IntParam("forecast_horizon", 7), maxHorizonDays)
	rate := g.rate(q.Base(), q.Target())

	series := func(days, dir int) []any {
		out := make([]any, 0, days)
		for i := 1; i <= days; i++ {
			// 0.5% daily noise around a slight upward drift
			change := (g.rnd.Float64()-0.5)*2*0.005 + 0.001
			mean := rate * (1 + change*float64(i*dir))
			out = append(out, map[string]any{
				"timestamp":   now.AddDate(0, 0, i*dir).UTC().Format("2006-01-02"),
				"mean":        mean,
				"lower_bound": mean * 0.97,
				"upper_bound": mean * 1.03,
			})
		}
		return out
	}

	factors := make([]any, 0, len(predictionFactors))
	for _, f := range predictionFactors {
		factors = append(factors, map[string]any{
			"factor_name":        f.name,
			"impact_level":       f.impact,
			"used_in_prediction": true,
		})
	}

	model := q.Param("model")
	if model == "" {
		model = "auto"
	}
	attrs := models.Attributes{
		"base_currency":          q.Base(),
		"target_currency":        q.Target(),
		"current_rate":           rate,
		"change_percent":         round2(g.uniform(-2, 2)),
		"confidence_score":       math.Round(g.uniform(MinConfidence, MaxConfidence)),
		"model_version":          "Statistical Model v2 (" + model + ")",
		"input_data_range":       now.AddDate(-1, 0, 0).Format("2006-01-02") + " to " + now.Format("2006-01-02"),
		"influencing_factors":    factors,
		"prediction_values":      series(horizon, 1),
		"mean_square_error":      0.00025,
		"root_mean_square_error": 0.0158,
		"mean_absolute_error":    0.0122,
	}
	if util.ParseBool(q.Param("backtest")) {
		attrs["backtest_values"] = series(horizon, -1)
	}
	return g.envelope("currency_prediction", g.event("currency_prediction", now, attrs))
}

// Volatility synthesizes a volatility analysis; the level follows the current value.
func (g *Generator) Volatility(q models.AnalyticsQuery) *models.Envelope {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	current := g.uniform(MinVolatility, MaxVolatility)
	average := math.Min(MaxVolatility, math.Max(MinVolatility, current*g.uniform(0.8, 1.2)))
	trends := []string{models.TrendStable, models.TrendIncreasing, models.TrendDecreasing}
	return g.envelope("volatility_analysis", g.event("volatility_analysis", now, models.Attributes{
		"base_currency":        q.Base(),
		"target_currency":      q.Target(),
		"current_volatility":   round2(current),
		"average_volatility":   round2(average),
		"volatility_level":     models.VolatilityLevel(round2(current)),
		"trend":                trends[g.rnd.IntN(len(trends))],
		"analysis_period_days": q.IntParam("days", 30),
		"confidence_score":     math.Round(g.uniform(75, MaxConfidence)),
	}))
}

// Correlation synthesizes a correlation analysis with pair-specific factors
// ahead of the common ones, ordered by absolute correlation.
func (g *Generator) Correlation(q models.AnalyticsQuery) *models.Envelope {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	fs := commonFactors
	if special, ok := pairFactors[q.Base()+q.Target()]; ok {
		fs = append(append([]factor{}, special...), commonFactors[:5]...)
	}
	type scored struct {
		factor
		actual float64
	}
	list := make([]scored, 0, len(fs))
	for _, f := range fs {
		c := math.Max(-MaxCorr, math.Min(MaxCorr, f.correlation))
		list = append(list, scored{factor: factor{f.name, c, f.kind}, actual: f.correlation})
	}
	sort.SliceStable(list, func(i, j int) bool {
		return math.Abs(list[i].correlation) > math.Abs(list[j].correlation)
	})
	factors := make([]any, 0, len(list))
	for _, f := range list {
		factors = append(factors, map[string]any{
			"factor":             f.name,
			"correlation":        f.correlation,
			"actual_correlation": f.actual,
			"type":               f.kind,
		})
	}

	corrMap := func(keys []string) map[string]any {
		m := make(map[string]any, len(keys))
		for _, k := range keys {
			m[k] = round2(g.uniform(-MaxCorr, MaxCorr))
		}
		return m
	}

	return g.envelope("correlation_analysis", g.event("correlation_analysis", now, models.Attributes{
		"base_currency":        q.Base(),
		"target_currency":      q.Target(),
		"confidence_score":     math.Round(g.uniform(MinConfidence, MaxConfidence)),
		"data_completeness":    math.Round(g.uniform(70, 100)),
		"analysis_period_days": q.IntParam("lookback_days", q.IntParam("days", 90)),
		"influencing_factors":  factors,
		"correlations": map[string]any{
			"news_sentiment":      corrMap(newsSentimentKeys),
			"economic_indicators": corrMap(economicKeys),
			"volatility_news":     corrMap(volatilityKeys),
		},
	}))
}

// Anomalies synthesizes one to four anomaly points on distinct days within the window.
func (g *Generator) Anomalies(q models.AnalyticsQuery) *models.Envelope {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	days := min(q.IntParam("days", 30), maxWindowDays)
	count := min(g.rnd.IntN(4)+1, days)
	seen := make(map[int]bool, count)
	offsets := make([]int, 0, count)
	for len(offsets) < count {
		off := g.rnd.IntN(days)
		if !seen[off] {
			seen[off] = true
			offsets = append(offsets, off)
		}
	}
	sort.Ints(offsets)
	points := make([]any, 0, count)
	for _, off := range offsets {
		z := g.uniform(MinZScore, MaxZScore)
		if g.rnd.IntN(2) == 0 {
			z = -z
		}
		points = append(points, map[string]any{
			"timestamp":      now.AddDate(0, 0, -off).UTC().Format(time.RFC3339),
			"rate":           g.uniform(MinRate, MaxRate),
			"z_score":        z,
			"percent_change": g.uniform(MinPctChange, MaxPctChange),
		})
	}
	return g.envelope("anomaly_detection", g.event("anomaly_detection", now, models.Attributes{
		"base_currency":        q.Base(),
		"target_currency":      q.Target(),
		"anomaly_count":        count,
		"analysis_period_days": days,
		"anomaly_points":       points,
	}))
}

// News synthesizes headlines for a currency or an "A/B" pair, split evenly
// across both sides, then capped at limit.
func (g *Generator) News(currency string, limit int) *models.Envelope {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if limit <= 0 {
		limit = 10
	}
	parts := strings.Split(util.UpperCode(currency, models.DefaultBase), "/")
	limit = min(limit, len(parts)*len(newsTemplates))
	perPart := (limit + len(parts) - 1) / len(parts)

	events := make([]models.Event, 0, limit)
	for _, cur := range parts {
		cur = strings.TrimSpace(cur)
		order := g.rnd.Perm(len(newsTemplates))
		for i := 0; i < perPart && i < len(order); i++ {
			if len(events) == limit {
				break
			}
			h := newsTemplates[order[i]]
			published := now.AddDate(0, 0, -g.rnd.IntN(7))
			events = append(events, g.event("currency_news", published, models.Attributes{
				"title":           fmt.Sprintf(h.title, cur),
				"source":          h.source,
				"url":             h.url,
				"summary":         fmt.Sprintf(h.summary, cur),
				"sentiment_score": h.sentiment,
				"sentiment_label": h.label,
				"currency":        cur,
			}))
		}
	}
	return g.envelope("currency_news", events...)
}

// Historical synthesizes a daily OHLC series ending today.
func (g *Generator) Historical(q models.AnalyticsQuery) *models.Envelope {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	days := min(q.IntParam("days", 30), maxWindowDays)
	rate := g.rate(q.Base(), q.Target())
	data := make([]any, 0, days)
	for i := days - 1; i >= 0; i-- {
		open := rate
		rate = rate * (1 + (g.rnd.Float64()-0.5)*0.01)
		hi := math.Max(open, rate) * (1 + g.rnd.Float64()*0.002)
		lo := math.Min(open, rate) * (1 - g.rnd.Float64()*0.002)
		data = append(data, map[string]any{
			"date":  now.AddDate(0, 0, -i).UTC().Format("2006-01-02"),
			"open":  open,
			"high":  hi,
			"low":   lo,
			"close": rate,
		})
	}
	return g.envelope("historical_rates", g.event("historical_rates", now, models.Attributes{
		"base":   q.Base(),
		"target": q.Target(),
		"data":   data,
	}))
}
