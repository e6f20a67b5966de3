package api

import (
	"FxDash/internal/domain/models"
	"FxDash/internal/usecase"
	xhttp "FxDash/pkg/http"
	"FxDash/pkg/http/middleware"
	xlogger "FxDash/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardEchoHandler serves the aggregated dashboard snapshot.
type DashboardEchoHandler struct {
	logger   *xlogger.Logger
	snapshot *usecase.DashboardSnapshotUseCase
}

func NewDashboardEchoHandler(logger *xlogger.Logger, snapshot *usecase.DashboardSnapshotUseCase) *DashboardEchoHandler {
	return &DashboardEchoHandler{logger: logger, snapshot: snapshot}
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/dashboard", h.Snapshot, middleware.NoCache())
}

func (h *DashboardEchoHandler) Snapshot(c echo.Context) error {
	req := &models.SnapshotQueryParams{}
	if verr := xhttp.ReadQuery(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	base, target := req.Pair()
	days := intParam(req.Days)
	if days == "" {
		days = "30"
	}
	q := models.NewAnalyticsQuery(base, target, map[string]string{"days": days})
	res, err := h.snapshot.GetSnapshot(c.Request().Context(), q)
	if err != nil {
		h.logger.Error("dashboard snapshot error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if len(res.Errors) > 0 {
		h.logger.Warn("dashboard snapshot incomplete",
			xlogger.Pair(q.Base(), q.Target()),
			xlogger.Any("errors", res.Errors))
	}
	return xhttp.SuccessResponse(c, res)
}
