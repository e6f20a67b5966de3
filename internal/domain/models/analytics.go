package models

// Normalized analytics results. Required numerics are always finite and
// required slices/maps are never nil; optional values are pointers.

type PredictionValue struct {
	Timestamp    string  `json:"timestamp"`
	Mean         float64 `json:"mean"`
	LowerBound   float64 `json:"lower_bound"`
	UpperBound   float64 `json:"upper_bound"`
	IsHistorical bool    `json:"isHistorical"` // true for backtest points
}

type InfluencingFactor struct {
	FactorName       string `json:"factor_name"`
	ImpactLevel      string `json:"impact_level"` // "high", "medium", "low"
	UsedInPrediction bool   `json:"used_in_prediction"`
}

type Prediction struct {
	BaseCurrency        string              `json:"baseCurrency"`
	TargetCurrency      string              `json:"targetCurrency"`
	CurrentRate         float64             `json:"currentRate"`
	ChangePercent       float64             `json:"changePercent"`
	ConfidenceScore     float64             `json:"confidenceScore"`
	ModelVersion        string              `json:"modelVersion"`
	InputDataRange      string              `json:"inputDataRange"`
	InfluencingFactors  []InfluencingFactor `json:"influencingFactors"`
	PredictionValues    []PredictionValue   `json:"predictionValues"` // ascending by timestamp
	MeanSquareError     *float64            `json:"meanSquareError,omitempty"`
	RootMeanSquareError *float64            `json:"rootMeanSquareError,omitempty"`
	MeanAbsoluteError   *float64            `json:"meanAbsoluteError,omitempty"`
}

const (
	VolatilityNormal  = "NORMAL"
	VolatilityHigh    = "HIGH"
	VolatilityExtreme = "EXTREME"

	TrendStable     = "STABLE"
	TrendIncreasing = "INCREASING"
	TrendDecreasing = "DECREASING"
)

type VolatilityAnalysis struct {
	BaseCurrency       string   `json:"baseCurrency"`
	TargetCurrency     string   `json:"targetCurrency"`
	CurrentVolatility  float64  `json:"currentVolatility"`
	AverageVolatility  float64  `json:"averageVolatility"`
	VolatilityLevel    string   `json:"volatilityLevel"` // NORMAL | HIGH | EXTREME
	AnalysisPeriodDays int      `json:"analysisPeriodDays"`
	Trend              string   `json:"trend"` // STABLE | INCREASING | DECREASING
	ConfidenceScore    *float64 `json:"confidenceScore,omitempty"`
}

type CorrelationFactor struct {
	Factor            string   `json:"factor"`
	Correlation       float64  `json:"correlation"`
	ActualCorrelation *float64 `json:"actual_correlation,omitempty"`
	Type              string   `json:"type"` // "news", "economic", "volatility"
}

type CorrelationMaps struct {
	NewsSentiment      map[string]float64 `json:"news_sentiment"`
	EconomicIndicators map[string]float64 `json:"economic_indicators"`
	VolatilityNews     map[string]float64 `json:"volatility_news"`
}

type CorrelationAnalysis struct {
	BaseCurrency       string              `json:"baseCurrency"`
	TargetCurrency     string              `json:"targetCurrency"`
	ConfidenceScore    float64             `json:"confidenceScore"`
	DataCompleteness   float64             `json:"dataCompleteness"`
	AnalysisPeriodDays int                 `json:"analysisPeriodDays"`
	InfluencingFactors []CorrelationFactor `json:"influencingFactors"`
	Correlations       CorrelationMaps     `json:"correlations"`
}

type AnomalyPoint struct {
	Timestamp     string  `json:"timestamp"`
	Rate          float64 `json:"rate"`
	ZScore        float64 `json:"z_score"`
	PercentChange float64 `json:"percent_change"`
}

// AnomalyDetectionResult is also the proxy's wire shape for /api/anomalies.
type AnomalyDetectionResult struct {
	Base               string         `json:"base"`
	Target             string         `json:"target"`
	AnomalyCount       int            `json:"anomaly_count"`
	AnalysisPeriodDays int            `json:"analysis_period_days"`
	AnomalyPoints      []AnomalyPoint `json:"anomaly_points"`
}

type NewsArticle struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Source         string   `json:"source"`
	URL            string   `json:"url"`
	Summary        string   `json:"summary"`
	Currency       string   `json:"currency"`
	PublishedAt    string   `json:"publishedAt"`
	SentimentScore *float64 `json:"sentimentScore,omitempty"`
	SentimentLabel string   `json:"sentimentLabel"` // "bullish", "somewhat_bearish", ...
}

type HistoricalPoint struct {
	Date  string  `json:"date"`
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// ExchangeRate is the wire shape of /api/exchange-rate.
type ExchangeRate struct {
	Base   string  `json:"base"`
	Target string  `json:"target"`
	Rate   float64 `json:"rate"`
}
