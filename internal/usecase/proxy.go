package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"FxDash/internal/domain/models"
	domsvc "FxDash/internal/domain/service"
	"FxDash/internal/services/analytics"
	"FxDash/internal/services/fallback"
	"FxDash/pkg/config"
	xhttp "FxDash/pkg/http"
	"FxDash/pkg/logger"
)

// AnalyticsProxy turns upstream analytics answers into passthrough data, a
// neutral fallback, or a propagated error.
type AnalyticsProxy struct {
	backend    analytics.Backend
	timeouts   config.Timeouts
	retryModel string
	metrics    domsvc.Metrics
	log        *logger.Logger
}

func NewAnalyticsProxy(backend analytics.Backend, up config.Upstream, m domsvc.Metrics, l *logger.Logger) *AnalyticsProxy {
	if m == nil {
		m = domsvc.NoopMetrics()
	}
	if l == nil {
		l = logger.Nop()
	}
	retry := up.RetryModel
	if retry == "" {
		retry = models.ModelStatistical
	}
	return &AnalyticsProxy{backend: backend, timeouts: up.Timeouts, retryModel: retry, metrics: m, log: l}
}

// absentStatuses mean "no data for this query" and are answered with a fallback.
var absentStatuses = map[int]bool{
	http.StatusNotFound:            true,
	http.StatusMethodNotAllowed:    true,
	http.StatusUnprocessableEntity: true,
	http.StatusGatewayTimeout:      true,
}

// settle classifies one upstream outcome. A nil env with a nil error means
// the caller should serve its fallback; reason says why.
func (p *AnalyticsProxy) settle(req *analytics.Request, resp *analytics.Response, err error) (env *models.Envelope, reason string, appErr error) {
	q := req.Params
	if err != nil {
		reason = "transport"
		if errors.Is(err, analytics.ErrUpstreamTimeout) {
			reason = "timeout"
		}
		p.log.Warn("upstream call failed, serving fallback",
			logger.String("resource", string(req.Resource)),
			logger.Pair(q.Base(), q.Target()),
			logger.String("reason", reason),
			logger.Error(err))
		return nil, reason, nil
	}
	if !resp.OK() {
		if absentStatuses[resp.Status] {
			reason = fmt.Sprintf("status %d", resp.Status)
			p.log.Info("upstream has no data, serving fallback",
				logger.String("resource", string(req.Resource)),
				logger.Pair(q.Base(), q.Target()),
				logger.Int("status", resp.Status))
			return nil, reason, nil
		}
		p.log.Error("upstream error propagated",
			logger.String("resource", string(req.Resource)),
			logger.Pair(q.Base(), q.Target()),
			logger.Int("status", resp.Status))
		return nil, "", xhttp.UpstreamError(resp.Status, "Failed to fetch %s data: %d", resourceNoun(req.Resource), resp.Status)
	}
	env, perr := models.ParseEnvelope(resp.Body)
	if perr != nil {
		p.log.Warn("upstream payload unparseable, serving fallback",
			logger.String("resource", string(req.Resource)),
			logger.Pair(q.Base(), q.Target()),
			logger.Error(perr))
		return nil, "malformed", nil
	}
	return env, "", nil
}

func resourceNoun(r models.Resource) string {
	return strings.ReplaceAll(string(r), "_", " ")
}

// envelopeResult finishes a passthrough resource: valid reports whether the
// parsed envelope has the expected shape.
func (p *AnalyticsProxy) envelopeResult(
	req *analytics.Request,
	resp *analytics.Response,
	err error,
	valid func(*models.Envelope) bool,
	neutral func() *models.Envelope,
) (models.Result[*models.Envelope], error) {
	env, reason, appErr := p.settle(req, resp, err)
	if appErr != nil {
		p.metrics.RecordOutcome(string(req.Resource), domsvc.OutcomeError)
		return models.Result[*models.Envelope]{}, appErr
	}
	if env != nil && !valid(env) {
		p.log.Warn("upstream payload has unexpected shape, serving fallback",
			logger.String("resource", string(req.Resource)),
			logger.Pair(req.Params.Base(), req.Params.Target()))
		env, reason = nil, "shape"
	}
	if env == nil {
		p.metrics.RecordOutcome(string(req.Resource), domsvc.OutcomeFallback)
		return models.Empty(neutral(), reason), nil
	}
	p.metrics.RecordOutcome(string(req.Resource), domsvc.OutcomeOK)
	return models.Ok(env), nil
}

func hasAttributes(env *models.Envelope) bool {
	_, ok := env.First()
	return ok
}

// Prediction calls the primary model; on timeout it retries exactly once with
// the statistical model under a shorter budget. The two calls never overlap.
func (p *AnalyticsProxy) Prediction(ctx context.Context, q models.AnalyticsQuery) (models.Result[*models.Envelope], error) {
	req := analytics.PredictionRequest(q, p.timeouts.Prediction)
	resp, err := p.backend.Do(ctx, req)
	if errors.Is(err, analytics.ErrUpstreamTimeout) && !strings.EqualFold(q.Param("model"), p.retryModel) {
		p.metrics.RecordRetry(string(models.ResourcePrediction), p.retryModel)
		p.log.Warn("prediction timed out, retrying with fallback model",
			logger.Pair(q.Base(), q.Target()),
			logger.String("model", p.retryModel),
			logger.Duration("timeout", p.timeouts.PredictionRetry))
		req = analytics.PredictionRequest(q.With("model", p.retryModel), p.timeouts.PredictionRetry)
		resp, err = p.backend.Do(ctx, req)
	}

	res, appErr := p.envelopeResult(req, resp, err, hasAttributes, func() *models.Envelope { return fallback.Prediction(q) })
	if appErr != nil || res.IsEmpty() {
		return res, appErr
	}
	p.coerceConfidence(q, res.Data())
	return res, nil
}

// coerceConfidence rewrites every confidence_score to a finite number.
func (p *AnalyticsProxy) coerceConfidence(q models.AnalyticsQuery, env *models.Envelope) {
	for i := range env.Events {
		a := env.Events[i].Attributes
		raw, ok := a["confidence_score"]
		if !ok {
			continue
		}
		n := a.Number("confidence_score", models.DefaultPredictionConfidence)
		if _, numeric := raw.(float64); !numeric {
			p.log.Debug("confidence score coerced",
				logger.Pair(q.Base(), q.Target()),
				logger.Any("raw", raw),
				logger.Float64("confidence_score", n))
		}
		a["confidence_score"] = n
	}
}

func (p *AnalyticsProxy) Correlation(ctx context.Context, q models.AnalyticsQuery) (models.Result[*models.Envelope], error) {
	req := analytics.CorrelationRequest(q, p.timeouts.Correlation)
	resp, err := p.backend.Do(ctx, req)
	return p.envelopeResult(req, resp, err, hasAttributes, func() *models.Envelope { return fallback.Correlation(q) })
}

func (p *AnalyticsProxy) Volatility(ctx context.Context, q models.AnalyticsQuery) (models.Result[*models.Envelope], error) {
	req := analytics.VolatilityRequest(q, p.timeouts.Volatility)
	resp, err := p.backend.Do(ctx, req)
	return p.envelopeResult(req, resp, err, hasAttributes, func() *models.Envelope { return fallback.Volatility(q) })
}

func (p *AnalyticsProxy) Historical(ctx context.Context, q models.AnalyticsQuery) (models.Result[*models.Envelope], error) {
	req := analytics.HistoricalRequest(q, p.timeouts.Historical)
	resp, err := p.backend.Do(ctx, req)
	valid := func(env *models.Envelope) bool {
		a, ok := env.First()
		return ok && a.HasKey("data")
	}
	return p.envelopeResult(req, resp, err, valid, func() *models.Envelope { return fallback.Historical(q) })
}

// News passes the envelope through; an answer without events is still valid.
func (p *AnalyticsProxy) News(ctx context.Context, q models.AnalyticsQuery) (models.Result[*models.Envelope], error) {
	req := analytics.NewsRequest(q, p.timeouts.News)
	resp, err := p.backend.Do(ctx, req)
	return p.envelopeResult(req, resp, err, func(*models.Envelope) bool { return true }, fallback.News)
}

// Anomalies converts the upstream envelope into the flat anomaly shape.
func (p *AnalyticsProxy) Anomalies(ctx context.Context, q models.AnalyticsQuery) (models.Result[models.AnomalyDetectionResult], error) {
	req := analytics.AnomalyRequest(q, p.timeouts.Anomaly)
	resp, err := p.backend.Do(ctx, req)
	env, reason, appErr := p.settle(req, resp, err)
	if appErr != nil {
		p.metrics.RecordOutcome(string(req.Resource), domsvc.OutcomeError)
		return models.Result[models.AnomalyDetectionResult]{}, appErr
	}
	if env == nil {
		p.metrics.RecordOutcome(string(req.Resource), domsvc.OutcomeFallback)
		return models.Empty(fallback.Anomalies(q), reason), nil
	}
	p.metrics.RecordOutcome(string(req.Resource), domsvc.OutcomeOK)
	return models.Ok(models.AnomalyFromEnvelope(env, q)), nil
}

// ExchangeRate has no neutral value: every failure is reported to the caller.
func (p *AnalyticsProxy) ExchangeRate(ctx context.Context, q models.AnalyticsQuery) (models.ExchangeRate, error) {
	req := analytics.ExchangeRateRequest(q, p.timeouts.ExchangeRate)
	resp, err := p.backend.Do(ctx, req)
	res, appErr := p.strict(req, resp, err, "fetch exchange rate")
	if appErr != nil {
		return models.ExchangeRate{}, appErr
	}
	env := models.EnvelopeFromObject(res)
	attrs, _ := env.First()
	rate, ok := models.RateFromAttributes(attrs)
	if !ok {
		p.metrics.RecordOutcome(string(req.Resource), domsvc.OutcomeError)
		p.log.Error("exchange rate missing from upstream payload", logger.Pair(q.Base(), q.Target()))
		return models.ExchangeRate{}, xhttp.BadGatewayError("Could not extract rate from API response")
	}
	p.metrics.RecordOutcome(string(req.Resource), domsvc.OutcomeOK)
	return models.ExchangeRate{Base: q.Base(), Target: q.Target(), Rate: rate}, nil
}

// RegisterAlert forwards a validated alert and returns the backend's answer.
func (p *AnalyticsProxy) RegisterAlert(ctx context.Context, a models.AlertPayload) (map[string]any, error) {
	req := analytics.AlertRequest(a, p.timeouts.Alerts)
	resp, err := p.backend.Do(ctx, req)
	res, appErr := p.strict(req, resp, err, "register alert")
	if appErr != nil {
		return nil, appErr
	}
	p.metrics.RecordOutcome(string(req.Resource), domsvc.OutcomeOK)
	p.log.Info("alert registered",
		logger.Pair(a.Base, a.Target),
		logger.String("alert_type", a.AlertType))
	return res, nil
}

// strict maps every non-success outcome to an error: timeout 504, transport
// 502, non-2xx mirrored, non-object 2xx body 502.
func (p *AnalyticsProxy) strict(req *analytics.Request, resp *analytics.Response, err error, what string) (map[string]any, error) {
	q := req.Params
	fail := func(e *xhttp.AppError, cause error) (map[string]any, error) {
		p.metrics.RecordOutcome(string(req.Resource), domsvc.OutcomeError)
		p.log.Error("upstream call failed",
			logger.String("resource", string(req.Resource)),
			logger.Pair(q.Base(), q.Target()),
			logger.Int("status", e.Status),
			logger.Error(cause))
		return nil, e.WithError(cause)
	}
	switch {
	case errors.Is(err, analytics.ErrUpstreamTimeout):
		return fail(xhttp.GatewayTimeoutError("Request timed out"), err)
	case err != nil:
		return fail(xhttp.BadGatewayError(fmt.Sprintf("Failed to %s", what)), err)
	case !resp.OK():
		return fail(xhttp.UpstreamError(resp.Status, "%s", upstreamMessage(resp, what)), nil)
	}
	var obj map[string]any
	if jerr := json.Unmarshal(resp.Body, &obj); jerr != nil || obj == nil {
		return fail(xhttp.BadGatewayError(fmt.Sprintf("Failed to %s: invalid upstream response", what)), jerr)
	}
	return obj, nil
}

// upstreamMessage prefers a message carried in the upstream error body.
func upstreamMessage(resp *analytics.Response, what string) string {
	var body map[string]any
	if json.Unmarshal(resp.Body, &body) == nil {
		for _, k := range []string{"error", "detail", "message"} {
			if s, ok := body[k].(string); ok && s != "" {
				return s
			}
		}
	}
	return fmt.Sprintf("Failed to %s: %d", what, resp.Status)
}
