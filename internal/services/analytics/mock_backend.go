package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"FxDash/internal/domain/models"
	"FxDash/internal/services/mock"

	"github.com/google/uuid"
)

// MockBackend answers every call from the mock generator. Used for local
// development when upstream.mock_data is set.
type MockBackend struct {
	gen *mock.Generator
}

func NewMockBackend(gen *mock.Generator) *MockBackend {
	return &MockBackend{gen: gen}
}

func (m *MockBackend) Do(ctx context.Context, req *Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	q := req.Params
	status := http.StatusOK
	var body any
	switch req.Resource {
	case models.ResourcePrediction:
		body = m.gen.Prediction(q)
	case models.ResourceCorrelation:
		body = m.gen.Correlation(q)
	case models.ResourceVolatility:
		body = m.gen.Volatility(q)
	case models.ResourceAnomaly:
		body = m.gen.Anomalies(q)
	case models.ResourceNews:
		body = m.gen.News(q.Param("currency"), q.IntParam("limit", 10))
	case models.ResourceHistorical:
		body = m.gen.Historical(q)
	case models.ResourceExchangeRate:
		body = m.gen.ExchangeRate(q)
	case models.ResourceAlert:
		status = http.StatusCreated
		body = map[string]any{
			"alert_id": uuid.NewString(),
			"status":   "registered",
			"alert":    req.Body,
		}
	default:
		return &Response{Status: http.StatusNotFound, Body: []byte(`{"error":"unknown resource"}`)}, nil
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: encode mock %s: %v", ErrTransport, req.Resource, err)
	}
	return &Response{Status: status, Body: b}, nil
}

var _ Backend = (*MockBackend)(nil)
