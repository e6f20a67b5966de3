package analytics

import (
	"net/url"
	"time"

	"FxDash/internal/domain/models"
	xhttp "FxDash/pkg/http"
)

// Backend routes, relative to the configured base URL.
const (
	pathPrediction  = "/v2/analytics/prediction"
	pathCorrelation = "/v2/analytics/correlation"
	pathVolatility  = "/v1/analytics/volatility"
	pathAnomaly     = "/v2/analytics/anomaly-detection/"
	pathNews        = "/v1/news/events"
	pathRates       = "/v1/currency/rates"
	pathAlerts      = "/v2/alerts/register/"
)

// PredictionRequest forwards refresh, forecast_horizon, model, confidence and backtest.
func PredictionRequest(q models.AnalyticsQuery, timeout time.Duration) *Request {
	return &Request{
		Resource: models.ResourcePrediction,
		Method:   xhttp.MethodGet,
		Path:     pathPrediction + q.PairPath(),
		Query:    q.Values(),
		Timeout:  timeout,
		Params:   q,
	}
}

func CorrelationRequest(q models.AnalyticsQuery, timeout time.Duration) *Request {
	return &Request{
		Resource: models.ResourceCorrelation,
		Method:   xhttp.MethodGet,
		Path:     pathCorrelation + q.PairPath(),
		Query:    q.Values(),
		Timeout:  timeout,
		Params:   q,
	}
}

func VolatilityRequest(q models.AnalyticsQuery, timeout time.Duration) *Request {
	return &Request{
		Resource: models.ResourceVolatility,
		Method:   xhttp.MethodGet,
		Path:     pathVolatility + q.PairPath(),
		Query:    q.Values(),
		Timeout:  timeout,
		Params:   q,
	}
}

type anomalyBody struct {
	Base   string `json:"base"`
	Target string `json:"target"`
	Days   int    `json:"days"`
}

// AnomalyRequest posts the pair and window as a JSON body.
func AnomalyRequest(q models.AnalyticsQuery, timeout time.Duration) *Request {
	return &Request{
		Resource: models.ResourceAnomaly,
		Method:   xhttp.MethodPost,
		Path:     pathAnomaly,
		Body:     anomalyBody{Base: q.Base(), Target: q.Target(), Days: q.IntParam("days", 30)},
		Timeout:  timeout,
		Params:   q,
	}
}

// NewsRequest expects currency, limit and sentiment_score params on q.
func NewsRequest(q models.AnalyticsQuery, timeout time.Duration) *Request {
	return &Request{
		Resource: models.ResourceNews,
		Method:   xhttp.MethodGet,
		Path:     pathNews,
		Query:    q.Values(),
		Timeout:  timeout,
		Params:   q,
	}
}

func HistoricalRequest(q models.AnalyticsQuery, timeout time.Duration) *Request {
	return &Request{
		Resource: models.ResourceHistorical,
		Method:   xhttp.MethodPost,
		Path:     pathRates + q.PairPath() + "/historical",
		Query:    q.Values(),
		Timeout:  timeout,
		Params:   q,
	}
}

func ExchangeRateRequest(q models.AnalyticsQuery, timeout time.Duration) *Request {
	return &Request{
		Resource: models.ResourceExchangeRate,
		Method:   xhttp.MethodGet,
		Path:     pathRates + q.PairPath() + "/",
		Query:    url.Values{},
		Timeout:  timeout,
		Params:   q,
	}
}

func AlertRequest(p models.AlertPayload, timeout time.Duration) *Request {
	return &Request{
		Resource: models.ResourceAlert,
		Method:   xhttp.MethodPost,
		Path:     pathAlerts,
		Body:     p,
		Timeout:  timeout,
		Params:   models.NewAnalyticsQuery(p.Base, p.Target, nil),
	}
}
