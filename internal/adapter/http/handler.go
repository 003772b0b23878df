package httpadapter

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"fleetsim/internal/app/fleetview"
	"fleetsim/internal/app/ports"
	"fleetsim/internal/domain/fleet"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// SimControl is the slice of the scheduler the API needs: set the tick
// speed and trigger a fleet reset.
type SimControl interface {
	SetSpeedMultiplier(m float64) error
	ResetAll(ctx context.Context) (int, error)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

type Handler struct {
	FleetUC fleetview.UseCase
	Sim     SimControl
	KPI     kpiSnapshotProvider
	Logger  *slog.Logger
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())
	if h.Logger != nil {
		s.Use(requestLogMiddleware(h.Logger))
	}

	s.GET("/boats", h.listBoats)
	s.GET("/boats/:id", h.getBoat)
	s.POST("/boats/reset", h.resetBoats)
	s.GET("/healthz", h.health)
	s.GET("/ops/kpi", h.kpi)
}

// listBoats validates the optional speed multiplier, hands it to the
// scheduler, and returns the latest published fleet snapshot. Validation
// happens before the scheduler is touched, so an invalid speed never
// influences a tick.
func (h Handler) listBoats(c context.Context, ctx *app.RequestContext) {
	speed := 1.0
	if raw := string(ctx.Query("speed")); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(ctx, fleet.ErrSpeedOutOfRange)
			return
		}
		speed = parsed
	}
	if err := h.Sim.SetSpeedMultiplier(speed); err != nil {
		writeError(ctx, err)
		return
	}

	resp, err := h.FleetUC.Fleet(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) getBoat(c context.Context, ctx *app.RequestContext) {
	id := ctx.Param("id")
	if id == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_vessel_id", "vessel id is required")
		return
	}
	resp, err := h.FleetUC.Vessel(c, id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) resetBoats(c context.Context, ctx *app.RequestContext) {
	count, err := h.Sim.ResetAll(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]int{"reset": count})
}

func (h Handler) health(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]string{"status": "ok"})
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, fleet.ErrSpeedOutOfRange):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_speed", "speed must be between 0.1 and 10.0")
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeErrorBody(ctx, consts.StatusGatewayTimeout, "store_timeout", "state store timed out")
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
