package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fieldtrack/dashboard-api/internal/core/domain"
	"github.com/fieldtrack/dashboard-api/internal/core/ports"
)

// TicketHandler serves the merged recent-tickets view.
type TicketHandler struct {
	tickets ports.TicketService
}

func NewTicketHandler(tickets ports.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

type recentTicketsResponse struct {
	Items []domain.Ticket `json:"items"`
	Count int             `json:"count"`
}

// Recent handles GET /v1/tickets/recent?limit=N.
//
// @Summary      Most recent tickets across the caller's sectors
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum number of tickets (default 20, max 100)"
// @Success      200    {object}  recentTicketsResponse
// @Failure      401    {object}  map[string]string
// @Router       /v1/tickets/recent [get]
func (h *TicketHandler) Recent(c echo.Context) error {
	_, _, sectors, err := ctxAccess(c)
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
	}

	items, err := h.tickets.Recent(c.Request().Context(), sectors, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recentTicketsResponse{Items: items, Count: len(items)})
}
