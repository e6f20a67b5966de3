package models

import (
	"sort"
	"strings"

	"FxDash/pkg/util"
)

// DefaultPredictionConfidence replaces a confidence score that cannot be coerced.
const DefaultPredictionConfidence = 70

// PredictionFromAttributes maps prediction attributes onto Prediction.
// Backtest points are tagged historical and merged with the forecast in time order.
func PredictionFromAttributes(a Attributes, q AnalyticsQuery) Prediction {
	p := Prediction{
		BaseCurrency:        a.Code(q.Base(), "base_currency", "base"),
		TargetCurrency:      a.Code(q.Target(), "target_currency", "target"),
		CurrentRate:         a.Number("current_rate", 0),
		ChangePercent:       a.Number("change_percent", 0),
		ConfidenceScore:     a.Number("confidence_score", DefaultPredictionConfidence),
		ModelVersion:        a.String("model_version", ""),
		InputDataRange:      a.String("input_data_range", ""),
		InfluencingFactors:  make([]InfluencingFactor, 0),
		MeanSquareError:     a.OptionalNumber("mean_square_error"),
		RootMeanSquareError: a.OptionalNumber("root_mean_square_error"),
		MeanAbsoluteError:   a.OptionalNumber("mean_absolute_error"),
	}
	for _, f := range a.Objects("influencing_factors") {
		p.InfluencingFactors = append(p.InfluencingFactors, InfluencingFactor{
			FactorName:       f.String("factor_name", ""),
			ImpactLevel:      f.String("impact_level", ""),
			UsedInPrediction: f.Bool("used_in_prediction"),
		})
	}
	values := predictionValues(a.Objects("backtest_values"), true)
	values = append(values, predictionValues(a.Objects("prediction_values"), false)...)
	SortPredictionValues(values)
	p.PredictionValues = values
	return p
}

func predictionValues(items []Attributes, historical bool) []PredictionValue {
	out := make([]PredictionValue, 0, len(items))
	for _, v := range items {
		mean := v.Number("mean", 0)
		out = append(out, PredictionValue{
			Timestamp:    v.String("timestamp", ""),
			Mean:         mean,
			LowerBound:   v.Number("lower_bound", mean),
			UpperBound:   v.Number("upper_bound", mean),
			IsHistorical: historical,
		})
	}
	return out
}

// SortPredictionValues orders points ascending by timestamp. Points with an
// unparseable timestamp keep their relative order after the parseable ones.
func SortPredictionValues(values []PredictionValue) {
	sort.SliceStable(values, func(i, j int) bool {
		ti, okI := util.ParseTime(values[i].Timestamp)
		tj, okJ := util.ParseTime(values[j].Timestamp)
		switch {
		case okI && okJ:
			return ti.Before(tj)
		default:
			return okI && !okJ
		}
	})
}

// VolatilityFromAttributes maps volatility attributes onto VolatilityAnalysis.
func VolatilityFromAttributes(a Attributes, q AnalyticsQuery) VolatilityAnalysis {
	return VolatilityAnalysis{
		BaseCurrency:       a.Code(q.Base(), "base_currency", "base"),
		TargetCurrency:     a.Code(q.Target(), "target_currency", "target"),
		CurrentVolatility:  a.Number("current_volatility", 0),
		AverageVolatility:  a.Number("average_volatility", 0),
		VolatilityLevel:    oneOf(a.String("volatility_level", ""), VolatilityNormal, VolatilityNormal, VolatilityHigh, VolatilityExtreme),
		AnalysisPeriodDays: a.Int("analysis_period_days", q.IntParam("days", 30)),
		Trend:              oneOf(a.String("trend", ""), TrendStable, TrendStable, TrendIncreasing, TrendDecreasing),
		ConfidenceScore:    a.OptionalNumber("confidence_score"),
	}
}

// VolatilityLevel buckets a volatility percentage.
func VolatilityLevel(v float64) string {
	switch {
	case v < 10:
		return VolatilityNormal
	case v < 15:
		return VolatilityHigh
	default:
		return VolatilityExtreme
	}
}

func oneOf(s, def string, allowed ...string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, a := range allowed {
		if s == a {
			return s
		}
	}
	return def
}

// CorrelationFromAttributes maps correlation attributes onto CorrelationAnalysis.
func CorrelationFromAttributes(a Attributes, q AnalyticsQuery) CorrelationAnalysis {
	c := CorrelationAnalysis{
		BaseCurrency:       a.Code(q.Base(), "base_currency", "base"),
		TargetCurrency:     a.Code(q.Target(), "target_currency", "target"),
		ConfidenceScore:    a.Number("confidence_score", 0),
		DataCompleteness:   a.Number("data_completeness", 0),
		AnalysisPeriodDays: a.Int("analysis_period_days", q.IntParam("lookback_days", 90)),
		InfluencingFactors: make([]CorrelationFactor, 0),
	}
	for _, f := range a.Objects("influencing_factors") {
		c.InfluencingFactors = append(c.InfluencingFactors, CorrelationFactor{
			Factor:            f.String("factor", ""),
			Correlation:       f.Number("correlation", 0),
			ActualCorrelation: f.OptionalNumber("actual_correlation"),
			Type:              f.String("type", ""),
		})
	}
	corr := a.Object("correlations")
	c.Correlations = CorrelationMaps{
		NewsSentiment:      numberMap(corr.Object("news_sentiment")),
		EconomicIndicators: numberMap(corr.Object("economic_indicators")),
		VolatilityNews:     numberMap(corr.Object("volatility_news")),
	}
	return c
}

// numberMap keeps only the entries that coerce to a number.
func numberMap(a Attributes) map[string]float64 {
	out := make(map[string]float64, len(a))
	for k := range a {
		if n := a.OptionalNumber(k); n != nil {
			out[k] = *n
		}
	}
	return out
}

// AnomalyFromAttributes accepts both the flat proxy shape and the ADAGE attribute shape.
func AnomalyFromAttributes(a Attributes, q AnalyticsQuery) AnomalyDetectionResult {
	points := AnomalyPoints(a.Objects("anomaly_points"))
	return AnomalyDetectionResult{
		Base:               a.Code(q.Base(), "base", "base_currency"),
		Target:             a.Code(q.Target(), "target", "target_currency"),
		AnomalyCount:       a.Int("anomaly_count", len(points)),
		AnalysisPeriodDays: a.Int("analysis_period_days", q.IntParam("days", 30)),
		AnomalyPoints:      points,
	}
}

// AnomalyPoints converts raw anomaly point objects.
func AnomalyPoints(items []Attributes) []AnomalyPoint {
	out := make([]AnomalyPoint, 0, len(items))
	for _, p := range items {
		out = append(out, AnomalyPointFromAttributes(p))
	}
	return out
}

// AnomalyPointFromAttributes also reads the alternate timestamp/date keys
// used when each anomaly is its own event.
func AnomalyPointFromAttributes(p Attributes) AnomalyPoint {
	ts := p.String("timestamp", "")
	if ts == "" {
		ts = p.String("date", "")
	}
	return AnomalyPoint{
		Timestamp:     ts,
		Rate:          p.Number("rate", 0),
		ZScore:        p.Number("z_score", 0),
		PercentChange: p.Number("percent_change", 0),
	}
}

// NewsFromEnvelope maps every news event onto a NewsArticle.
func NewsFromEnvelope(env *Envelope) []NewsArticle {
	out := make([]NewsArticle, 0)
	if env == nil {
		return out
	}
	for _, ev := range env.Events {
		a := ev.Attributes
		published := ev.TimeObject.String("timestamp", "")
		if published == "" {
			published = a.String("published_at", "")
		}
		out = append(out, NewsArticle{
			ID:             ev.EventID,
			Title:          a.String("title", ""),
			Source:         a.String("source", ""),
			URL:            a.String("url", ""),
			Summary:        a.String("summary", ""),
			Currency:       a.String("currency", ""),
			PublishedAt:    published,
			SentimentScore: a.OptionalNumber("sentiment_score"),
			SentimentLabel: a.String("sentiment_label", ""),
		})
	}
	return out
}

// HistoricalFromAttributes returns the OHLC series in date order.
func HistoricalFromAttributes(a Attributes) []HistoricalPoint {
	items := a.Objects("data")
	out := make([]HistoricalPoint, 0, len(items))
	for _, e := range items {
		c := e.Number("close", 0)
		out = append(out, HistoricalPoint{
			Date:  e.String("date", ""),
			Open:  e.Number("open", c),
			High:  e.Number("high", c),
			Low:   e.Number("low", c),
			Close: c,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti, okI := util.ParseTime(out[i].Date)
		tj, okJ := util.ParseTime(out[j].Date)
		if okI && okJ {
			return ti.Before(tj)
		}
		return okI && !okJ
	})
	return out
}

// RateFromAttributes extracts a positive exchange rate.
func RateFromAttributes(a Attributes) (float64, bool) {
	r := a.OptionalNumber("rate")
	if r == nil || *r <= 0 {
		return 0, false
	}
	return *r, true
}

// AnomalyFromEnvelope reads anomalies from events[0].attributes.anomaly_points
// when present, otherwise treats every event as one anomaly point.
func AnomalyFromEnvelope(env *Envelope, q AnalyticsQuery) AnomalyDetectionResult {
	days := q.IntParam("days", 30)
	if attrs, ok := env.First(); ok && attrs.HasKey("anomaly_points") {
		res := AnomalyFromAttributes(attrs, q)
		res.AnomalyCount = len(res.AnomalyPoints)
		res.AnalysisPeriodDays = attrs.Int("analysis_period_days", days)
		return res
	}
	points := make([]AnomalyPoint, 0, len(env.Events))
	for _, ev := range env.Events {
		p := AnomalyPointFromAttributes(ev.Attributes)
		if ts := ev.TimeObject.String("timestamp", ""); ts != "" {
			p.Timestamp = ts
		}
		points = append(points, p)
	}
	return AnomalyDetectionResult{
		Base:               q.Base(),
		Target:             q.Target(),
		AnomalyCount:       len(points),
		AnalysisPeriodDays: days,
		AnomalyPoints:      points,
	}
}
