package usecase

import (
	"context"
	"sync"
	"time"

	"FxDash/internal/domain/models"
	domsvc "FxDash/internal/domain/service"
)

// DashboardSnapshotUseCase loads every analytics panel for a pair concurrently.
type DashboardSnapshotUseCase struct {
	reader  domsvc.DashboardReader
	timeout time.Duration
	now     func() time.Time
}

func NewDashboardSnapshotUseCase(reader domsvc.DashboardReader, timeout time.Duration) *DashboardSnapshotUseCase {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &DashboardSnapshotUseCase{reader: reader, timeout: timeout, now: time.Now}
}

// GetSnapshot never fails as a whole; a failed panel is reported in Errors.
func (uc *DashboardSnapshotUseCase) GetSnapshot(ctx context.Context, q models.AnalyticsQuery) (*models.DashboardSnapshot, error) {
	// Overall timeout
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	res := &models.DashboardSnapshot{
		Base:      q.Base(),
		Target:    q.Target(),
		Timestamp: uc.now(),
		Errors:    map[string]string{},
	}

	type item struct {
		name string
		val  interface{}
		err  error
	}
	ch := make(chan item, 4)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.reader.Prediction(ctx, q)
		ch <- item{"prediction", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.reader.Volatility(ctx, q)
		ch <- item{"volatility", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.reader.Correlation(ctx, q)
		ch <- item{"correlation", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.reader.Anomalies(ctx, q)
		ch <- item{"anomalies", v, err}
	}()

	go func() { wg.Wait(); close(ch) }()

	for it := range ch {
		if it.err != nil {
			res.Errors[it.name] = it.err.Error()
			continue
		}
		switch it.name {
		case "prediction":
			v := it.val.(models.Prediction)
			res.Prediction = &v
		case "volatility":
			v := it.val.(models.VolatilityAnalysis)
			res.Volatility = &v
		case "correlation":
			v := it.val.(models.CorrelationAnalysis)
			res.Correlation = &v
		case "anomalies":
			v := it.val.(models.AnomalyDetectionResult)
			res.Anomalies = &v
		}
	}

	if len(res.Errors) == 0 {
		res.Errors = nil
	}
	return res, nil
}
