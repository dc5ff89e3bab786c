package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldtrack/dashboard-api/internal/core/ports"
)

// DashboardHandler serves the overview figures and snapshot recording.
type DashboardHandler struct {
	stats ports.StatsService
}

func NewDashboardHandler(stats ports.StatsService) *DashboardHandler {
	return &DashboardHandler{stats: stats}
}

// Overview handles GET /v1/dashboard/overview.
//
// @Summary      Dashboard overview: live counts and evolution deltas
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Overview
// @Failure      401  {object}  map[string]string
// @Router       /v1/dashboard/overview [get]
func (h *DashboardHandler) Overview(c echo.Context) error {
	_, _, sectors, err := ctxAccess(c)
	if err != nil {
		return err
	}

	overview, err := h.stats.Overview(c.Request().Context(), sectors)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview)
}

// RecordSnapshot handles POST /v1/snapshots (admin only).
//
// @Summary      Record today's aggregate snapshot
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  domain.StatsSnapshot
// @Failure      409  {object}  map[string]string
// @Router       /v1/snapshots [post]
func (h *DashboardHandler) RecordSnapshot(c echo.Context) error {
	_, _, sectors, err := ctxAccess(c)
	if err != nil {
		return err
	}

	snap, err := h.stats.RecordSnapshot(c.Request().Context(), sectors)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, snap)
}
