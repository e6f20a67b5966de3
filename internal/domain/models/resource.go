package models

// Resource names one analytics resource. Used for routing, metrics labels and logs.
type Resource string

const (
	ResourcePrediction   Resource = "prediction"
	ResourceCorrelation  Resource = "correlation"
	ResourceVolatility   Resource = "volatility"
	ResourceAnomaly      Resource = "anomaly"
	ResourceNews         Resource = "news"
	ResourceExchangeRate Resource = "exchange_rate"
	ResourceHistorical   Resource = "historical"
	ResourceAlert        Resource = "alert"
)

// Default currency pair used when a request omits one side.
const (
	DefaultBase   = "USD"
	DefaultTarget = "AUD"
)

// ModelStatistical is the cheap prediction model used for the timeout retry.
const ModelStatistical = "statistical"
