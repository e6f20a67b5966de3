package models

// Inbound request shapes for the /api routes. Numeric query params are kept
// as strings so invalid input degrades to "absent" instead of a bind error.

type PairQuery struct {
	Base   string `query:"base"`
	Target string `query:"target"`
	From   string `query:"from"`
	To     string `query:"to"`
}

// Pair resolves base/target with from/to as aliases.
func (p PairQuery) Pair() (string, string) {
	base, target := p.Base, p.Target
	if base == "" {
		base = p.From
	}
	if target == "" {
		target = p.To
	}
	return base, target
}

type PredictionQueryParams struct {
	PairQuery
	Refresh         string `query:"refresh"`
	ForecastHorizon string `query:"forecast_horizon"`
	Model           string `query:"model"`
	Confidence      string `query:"confidence"`
	Backtest        string `query:"backtest"`
}

type CorrelationQueryParams struct {
	PairQuery
	Refresh      string `query:"refresh"`
	LookbackDays string `query:"lookback_days"`
}

// DaysQueryParams serves volatility, anomalies and historical rates.
type DaysQueryParams struct {
	PairQuery
	Days    string `query:"days" default:"30"`
	Refresh string `query:"refresh"`
}

type NewsQueryParams struct {
	Currency       string `query:"currency" default:"USD"`
	Limit          string `query:"limit" default:"10"`
	SentimentScore string `query:"sentiment_score"`
}

// CorrelationRequest is the POST /api/correlation body.
type CorrelationRequest struct {
	Base   string     `json:"base" validate:"required,alpha,len=3"`
	Target string     `json:"target" validate:"required,alpha,len=3"`
	Days   *FlexFloat `json:"days" validate:"required,gte=1"`
}

type SnapshotQueryParams struct {
	PairQuery
	Days string `query:"days" default:"30"`
}
