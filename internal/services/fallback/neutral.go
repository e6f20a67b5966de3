// Package fallback builds the neutral placeholders served when the analytics
// backend is unavailable. Each has exactly the wire shape of a real answer;
// only the values are empty or zero.
package fallback

import (
	"time"

	"FxDash/internal/domain/models"
)

var now = time.Now

func envelope(datasetType string, attrs models.Attributes) *models.Envelope {
	ts := models.Attributes{
		"timestamp": now().UTC().Format(time.RFC3339),
		"timezone":  "UTC",
	}
	env := &models.Envelope{
		DatasetType: datasetType,
		TimeObject:  ts,
		Events:      []models.Event{},
	}
	if attrs != nil {
		env.Events = append(env.Events, models.Event{
			TimeObject: ts,
			EventType:  datasetType,
			Attributes: attrs,
		})
	}
	return env
}

// Prediction is an empty forecast for q.
func Prediction(q models.AnalyticsQuery) *models.Envelope {
	return envelope("currency_prediction", PredictionAttributes(q))
}

// PredictionAttributes are the neutral prediction attributes.
func PredictionAttributes(q models.AnalyticsQuery) models.Attributes {
	return models.Attributes{
		"base_currency":       q.Base(),
		"target_currency":     q.Target(),
		"current_rate":        0.0,
		"change_percent":      0.0,
		"confidence_score":    0.0,
		"model_version":       "",
		"input_data_range":    "",
		"influencing_factors": []any{},
		"prediction_values":   []any{},
	}
}

// Correlation is an empty correlation analysis over lookback_days (default 90).
func Correlation(q models.AnalyticsQuery) *models.Envelope {
	return envelope("correlation_analysis", CorrelationAttributes(q))
}

// CorrelationAttributes are the neutral correlation attributes.
func CorrelationAttributes(q models.AnalyticsQuery) models.Attributes {
	return models.Attributes{
		"base_currency":        q.Base(),
		"target_currency":      q.Target(),
		"confidence_score":     0.0,
		"data_completeness":    0.0,
		"analysis_period_days": q.IntParam("lookback_days", q.IntParam("days", 90)),
		"influencing_factors":  []any{},
		"correlations": map[string]any{
			"news_sentiment":      map[string]any{},
			"economic_indicators": map[string]any{},
			"volatility_news":     map[string]any{},
		},
	}
}

// Volatility is a flat, stable volatility analysis over days (default 30).
func Volatility(q models.AnalyticsQuery) *models.Envelope {
	return envelope("volatility_analysis", VolatilityAttributes(q))
}

// VolatilityAttributes are the neutral volatility attributes.
func VolatilityAttributes(q models.AnalyticsQuery) models.Attributes {
	return models.Attributes{
		"base_currency":        q.Base(),
		"target_currency":      q.Target(),
		"current_volatility":   0.0,
		"average_volatility":   0.0,
		"volatility_level":     models.VolatilityNormal,
		"trend":                models.TrendStable,
		"analysis_period_days": q.IntParam("days", 30),
		"confidence_score":     0.0,
	}
}

// Anomalies is an empty anomaly result in the flat proxy shape.
func Anomalies(q models.AnalyticsQuery) models.AnomalyDetectionResult {
	return models.AnomalyDetectionResult{
		Base:               q.Base(),
		Target:             q.Target(),
		AnomalyCount:       0,
		AnalysisPeriodDays: q.IntParam("days", 30),
		AnomalyPoints:      []models.AnomalyPoint{},
	}
}

// News is an envelope without events.
func News() *models.Envelope {
	return envelope("currency_news", nil)
}

// Historical is an empty OHLC series.
func Historical(q models.AnalyticsQuery) *models.Envelope {
	return envelope("historical_rates", HistoricalAttributes(q))
}

// HistoricalAttributes are the neutral historical attributes.
func HistoricalAttributes(q models.AnalyticsQuery) models.Attributes {
	return models.Attributes{
		"base":   q.Base(),
		"target": q.Target(),
		"data":   []any{},
	}
}
