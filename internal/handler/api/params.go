package api

import (
	"strconv"
	"strings"

	"FxDash/internal/domain/models"
	"FxDash/pkg/util"
)

// Optional params are forwarded only when well formed; anything else counts as absent.

func intParam(s string) string {
	if v := util.ParsePositiveIntDefault(s, 0); v > 0 {
		return strconv.Itoa(v)
	}
	return ""
}

func floatParam(s string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func boolParam(s string) string {
	if util.ParseBool(s) {
		return "true"
	}
	return ""
}

func predictionQuery(p *models.PredictionQueryParams) models.AnalyticsQuery {
	base, target := p.Pair()
	return models.NewAnalyticsQuery(base, target, map[string]string{
		"refresh":          boolParam(p.Refresh),
		"forecast_horizon": intParam(p.ForecastHorizon),
		"model":            strings.ToLower(strings.TrimSpace(p.Model)),
		"confidence":       floatParam(p.Confidence),
		"backtest":         boolParam(p.Backtest),
	})
}

func correlationQuery(p *models.CorrelationQueryParams) models.AnalyticsQuery {
	base, target := p.Pair()
	return models.NewAnalyticsQuery(base, target, map[string]string{
		"refresh":       boolParam(p.Refresh),
		"lookback_days": intParam(p.LookbackDays),
	})
}

func daysQuery(p *models.DaysQueryParams) models.AnalyticsQuery {
	base, target := p.Pair()
	days := intParam(p.Days)
	if days == "" {
		days = "30"
	}
	return models.NewAnalyticsQuery(base, target, map[string]string{
		"days":    days,
		"refresh": boolParam(p.Refresh),
	})
}

func newsQuery(p *models.NewsQueryParams) models.AnalyticsQuery {
	currency := util.UpperCode(p.Currency, models.DefaultBase)
	limit := intParam(p.Limit)
	if limit == "" {
		limit = "10"
	}
	return models.NewAnalyticsQuery(currency, "", map[string]string{
		"currency":        currency,
		"limit":           limit,
		"sentiment_score": floatParam(p.SentimentScore),
	})
}
