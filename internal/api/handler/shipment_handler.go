package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldtrack/dashboard-api/internal/core/ports"
)

// ShipmentHandler serves the grouped shipment board.
type ShipmentHandler struct {
	shipments ports.ShipmentService
}

func NewShipmentHandler(shipments ports.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{shipments: shipments}
}

// Board handles GET /v1/shipments?sector=&q=.
//
// @Summary      Shipments grouped by client, with sector and text filters
// @Tags         shipments
// @Produce      json
// @Security     BearerAuth
// @Param        sector  query     string  false  "Exact sector filter"
// @Param        q       query     string  false  "Substring match on client name or code"
// @Success      200     {object}  ports.BoardResult
// @Failure      401     {object}  map[string]string
// @Router       /v1/shipments [get]
func (h *ShipmentHandler) Board(c echo.Context) error {
	_, _, sectors, err := ctxAccess(c)
	if err != nil {
		return err
	}

	board, err := h.shipments.Board(c.Request().Context(), sectors, ports.BoardFilter{
		Sector: c.QueryParam("sector"),
		Search: c.QueryParam("q"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, board)
}
