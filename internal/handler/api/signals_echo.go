package api

import (
	"errors"
	"net/http"
	"time"

	models "SignalDesk/internal/domain/models"
	domrepo "SignalDesk/internal/domain/repository"
	svcmetrics "SignalDesk/internal/service/metrics"
	"SignalDesk/internal/services/scoring"
	"SignalDesk/internal/usecase"
	xhttp "SignalDesk/pkg/http"
	xlogger "SignalDesk/pkg/logger"
	xutil "SignalDesk/pkg/util"

	"github.com/labstack/echo/v4"
)

// SignalsEchoHandler implements Echo-based HTTP handlers following Clean Architecture.
type SignalsEchoHandler struct {
	logger *xlogger.Logger
	gen    *usecase.SignalGenerator
	exec   *usecase.ExecuteSignalUseCase
	bars   domrepo.BarStore
}

func NewSignalsEchoHandler(logger *xlogger.Logger, gen *usecase.SignalGenerator, exec *usecase.ExecuteSignalUseCase, bars domrepo.BarStore) *SignalsEchoHandler {
	return &SignalsEchoHandler{logger: logger, gen: gen, exec: exec, bars: bars}
}

func (h *SignalsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/signals/score", h.Score)
	g.GET("/signals/generate", h.Generate)
	g.GET("/signals/latest", h.Latest)
	g.POST("/signals/:id/execute", h.Execute)
	g.GET("/indicators", h.Indicators)
	g.GET("/bars", h.Bars)
}

func (h *SignalsEchoHandler) Score(c echo.Context) error {
	start := time.Now()
	req := &models.ScoreRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	sig, err := h.gen.Score(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("score usecase error", xlogger.Error(err))
		svcmetrics.ScoringErrors.WithLabelValues("score").Inc()
		return xhttp.AppErrorResponse(c, mapScoringError(err))
	}
	svcmetrics.ScoringLatency.WithLabelValues("score").Observe(time.Since(start).Seconds())
	return xhttp.SuccessResponse(c, sig)
}

func (h *SignalsEchoHandler) Generate(c echo.Context) error {
	start := time.Now()
	req := &models.GenerateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	tf := domrepo.NormalizeTimeframe(req.TF)

	sig, err := h.gen.Generate(c.Request().Context(), req.Symbol, req.N, tf)
	if err != nil {
		h.logger.Error("generate usecase error", xlogger.Error(err))
		svcmetrics.ScoringErrors.WithLabelValues("generate").Inc()
		return xhttp.AppErrorResponse(c, mapScoringError(err))
	}
	svcmetrics.ScoringLatency.WithLabelValues("generate").Observe(time.Since(start).Seconds())
	return xhttp.CreatedResponse(c, sig)
}

func (h *SignalsEchoHandler) Latest(c echo.Context) error {
	req := &models.LatestRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	sigs, err := h.gen.Latest(c.Request().Context(), req.Symbol, req.Limit)
	if err != nil {
		h.logger.Error("latest usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapScoringError(err))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=15")
	return xhttp.ListResponse(c, sigs, int64(len(sigs)))
}

func (h *SignalsEchoHandler) Execute(c echo.Context) error {
	req := &models.ExecuteRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	sig, err := h.exec.Execute(c.Request().Context(), req.ID)
	if err != nil {
		h.logger.Error("execute usecase error", xlogger.String("id", req.ID), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapScoringError(err))
	}
	return xhttp.SuccessResponse(c, sig)
}

func (h *SignalsEchoHandler) Indicators(c echo.Context) error {
	start := time.Now()
	req := &models.IndicatorsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	tf := domrepo.NormalizeTimeframe(req.TF)

	set, err := h.gen.Indicators(c.Request().Context(), req.Symbol, req.N, tf)
	if err != nil {
		h.logger.Error("indicators usecase error", xlogger.Error(err))
		svcmetrics.ScoringErrors.WithLabelValues("indicators").Inc()
		return xhttp.AppErrorResponse(c, mapScoringError(err))
	}
	svcmetrics.ScoringLatency.WithLabelValues("indicators").Observe(time.Since(start).Seconds())
	return xhttp.SuccessResponse(c, set)
}

// Bars returns stored history for a symbol over a time range, aligned to
// timeframe boundaries. Defaults to the trailing 30 days.
func (h *SignalsEchoHandler) Bars(c echo.Context) error {
	symbol := c.QueryParam("symbol")
	if symbol == "" {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("symbol is required"))
	}
	tf := domrepo.NormalizeTimeframe(c.QueryParam("tf"))

	now := time.Now().UTC()
	to := xhttp.ParseTimeDefault(c.QueryParam("to"), now)
	from := xhttp.ParseTimeDefault(c.QueryParam("from"), now.AddDate(0, 0, -30))
	if !from.Before(to) {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("from must be before to"))
	}
	from, to = xutil.AlignFromTo(from, to, string(tf))

	bars, err := h.bars.Query(c.Request().Context(), symbol, from, to, tf)
	if err != nil {
		h.logger.Error("bars query error", xlogger.String("symbol", symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, bars, int64(len(bars)))
}

// mapScoringError translates domain errors into HTTP-status-bearing
// AppErrors; anything unrecognized stays a 500.
func mapScoringError(err error) error {
	switch {
	case errors.Is(err, scoring.ErrInsufficientData):
		return xhttp.NewAppError("ERR_INSUFFICIENT_DATA", "", err.Error(), http.StatusUnprocessableEntity).WithError(err)
	case errors.Is(err, scoring.ErrInvalidConfig):
		return xhttp.NewAppError("ERR_INVALID_CONFIG", "", err.Error(), http.StatusBadRequest).WithError(err)
	case errors.Is(err, models.ErrInvalidSignalState):
		return xhttp.NewAppError("ERR_INVALID_SIGNAL_STATE", "", err.Error(), http.StatusConflict).WithError(err)
	case errors.Is(err, domrepo.ErrNotFound):
		return xhttp.NotFoundError(err.Error()).WithError(err)
	default:
		return err
	}
}
