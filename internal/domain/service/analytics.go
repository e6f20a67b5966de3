package service

import (
	"context"

	"FxDash/internal/domain/models"
)

// Metrics records proxy and client outcomes.
type Metrics interface {
	RecordOutcome(resource, outcome string)
	RecordRetry(resource, model string)
	RecordUpstream(resource, class string, seconds float64)
	RecordClientResult(resource, source string)
}

// Outcome labels for Metrics.RecordOutcome.
const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)

// Source labels for Metrics.RecordClientResult.
const (
	SourceUpstream = "upstream"
	SourceFallback = "fallback"
	SourceMock     = "mock"
	SourceError    = "error"
)

// DashboardReader loads the typed analytics panels for one pair.
type DashboardReader interface {
	Prediction(ctx context.Context, q models.AnalyticsQuery) (models.Prediction, error)
	Volatility(ctx context.Context, q models.AnalyticsQuery) (models.VolatilityAnalysis, error)
	Correlation(ctx context.Context, q models.AnalyticsQuery) (models.CorrelationAnalysis, error)
	Anomalies(ctx context.Context, q models.AnalyticsQuery) (models.AnomalyDetectionResult, error)
}

type noopMetrics struct{}

func (noopMetrics) RecordOutcome(string, string)           {}
func (noopMetrics) RecordRetry(string, string)             {}
func (noopMetrics) RecordUpstream(string, string, float64) {}
func (noopMetrics) RecordClientResult(string, string)      {}

// NoopMetrics discards everything.
func NoopMetrics() Metrics { return noopMetrics{} }
