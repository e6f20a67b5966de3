package api

import (
	"math"
	"strconv"

	"FxDash/internal/domain/models"
	"FxDash/internal/usecase"
	xhttp "FxDash/pkg/http"
	"FxDash/pkg/http/middleware"
	xlogger "FxDash/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalyticsEchoHandler serves the /api proxy routes.
type AnalyticsEchoHandler struct {
	logger *xlogger.Logger
	proxy  *usecase.AnalyticsProxy
}

func NewAnalyticsEchoHandler(logger *xlogger.Logger, proxy *usecase.AnalyticsProxy) *AnalyticsEchoHandler {
	return &AnalyticsEchoHandler{logger: logger, proxy: proxy}
}

func (h *AnalyticsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api", middleware.NoCache())
	g.GET("/exchange-rate", h.ExchangeRate)
	g.GET("/prediction", h.Prediction)
	g.GET("/correlation", h.Correlation)
	g.POST("/correlation", h.CorrelationByBody)
	g.GET("/volatility", h.Volatility)
	g.POST("/volatility", h.Volatility)
	g.GET("/anomalies", h.Anomalies)
	g.POST("/anomalies", h.Anomalies)
	g.GET("/currency-news", h.News)
	g.GET("/historical-rates", h.HistoricalRates)
	g.POST("/alerts/register", h.RegisterAlert)
}

func (h *AnalyticsEchoHandler) ExchangeRate(c echo.Context) error {
	req := &models.PairQuery{}
	if verr := xhttp.ReadQuery(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	base, target := req.Pair()
	res, err := h.proxy.ExchangeRate(c.Request().Context(), models.NewAnalyticsQuery(base, target, nil))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalyticsEchoHandler) Prediction(c echo.Context) error {
	req := &models.PredictionQueryParams{}
	if verr := xhttp.ReadQuery(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.proxy.Prediction(c.Request().Context(), predictionQuery(req))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalyticsEchoHandler) Correlation(c echo.Context) error {
	req := &models.CorrelationQueryParams{}
	if verr := xhttp.ReadQuery(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.proxy.Correlation(c.Request().Context(), correlationQuery(req))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// CorrelationByBody takes base, target and days from a JSON body; all three are required.
func (h *AnalyticsEchoHandler) CorrelationByBody(c echo.Context) error {
	req := &models.CorrelationRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		h.logger.Warn("invalid correlation request", xlogger.Any("details", verr))
		return xhttp.BadRequestResponse(c, verr)
	}
	days := strconv.Itoa(int(math.Round(float64(*req.Days))))
	q := models.NewAnalyticsQuery(req.Base, req.Target, map[string]string{
		"days":          days,
		"lookback_days": days,
	})
	res, err := h.proxy.Correlation(c.Request().Context(), q)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalyticsEchoHandler) Volatility(c echo.Context) error {
	req := &models.DaysQueryParams{}
	if verr := xhttp.ReadQuery(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.proxy.Volatility(c.Request().Context(), daysQuery(req))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalyticsEchoHandler) Anomalies(c echo.Context) error {
	req := &models.DaysQueryParams{}
	if verr := xhttp.ReadQuery(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.proxy.Anomalies(c.Request().Context(), daysQuery(req))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalyticsEchoHandler) News(c echo.Context) error {
	req := &models.NewsQueryParams{}
	if verr := xhttp.ReadQuery(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.proxy.News(c.Request().Context(), newsQuery(req))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalyticsEchoHandler) HistoricalRates(c echo.Context) error {
	req := &models.DaysQueryParams{}
	if verr := xhttp.ReadQuery(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.proxy.Historical(c.Request().Context(), daysQuery(req))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalyticsEchoHandler) RegisterAlert(c echo.Context) error {
	req := &models.AlertRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		h.logger.Warn("invalid alert registration", xlogger.Any("details", verr))
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.proxy.RegisterAlert(c.Request().Context(), req.Payload())
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.CreatedResponse(c, res)
}
