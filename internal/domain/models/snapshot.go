package models

import "time"

// DashboardSnapshot is a consolidated view of the analytics panels for one pair.
// A section that failed is nil and its error is recorded under the section name.
type DashboardSnapshot struct {
	Base        string                  `json:"base"`
	Target      string                  `json:"target"`
	Timestamp   time.Time               `json:"timestamp"`
	Prediction  *Prediction             `json:"prediction,omitempty"`
	Volatility  *VolatilityAnalysis     `json:"volatility,omitempty"`
	Correlation *CorrelationAnalysis    `json:"correlation,omitempty"`
	Anomalies   *AnomalyDetectionResult `json:"anomalies,omitempty"`
	Errors      map[string]string       `json:"errors,omitempty"`
}
