package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldtrack/dashboard-api/internal/core/domain"
	"github.com/fieldtrack/dashboard-api/internal/core/ports"
)

// GeocodeHandler resolves address batches for the map view.
type GeocodeHandler struct {
	geocode ports.GeocodeService
}

func NewGeocodeHandler(geocode ports.GeocodeService) *GeocodeHandler {
	return &GeocodeHandler{geocode: geocode}
}

type geocodeBatchRequest struct {
	// Addresses may contain duplicates and empty strings; both are tolerated.
	Addresses []string `json:"addresses" validate:"required,min=1,max=200,dive,max=500"`
}

type geocodeBatchResponse struct {
	Coordinates  map[string]*domain.Coordinates `json:"coordinates"`
	ErrorMessage string                         `json:"error_message,omitempty"`
	Busy         bool                           `json:"busy"`
}

// Resolve handles POST /v1/geocode.
//
// Partial failures do not fail the call: unresolvable addresses map to null
// and their distinct messages are aggregated in error_message.
//
// @Summary      Resolve a batch of addresses to coordinates
// @Tags         geocode
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      geocodeBatchRequest  true  "Addresses to resolve"
// @Success      200   {object}  geocodeBatchResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/geocode [post]
func (h *GeocodeHandler) Resolve(c echo.Context) error {
	var req geocodeBatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.geocode.Resolve(c.Request().Context(), req.Addresses)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, geocodeBatchResponse{
		Coordinates:  result.Coordinates,
		ErrorMessage: result.ErrorMessage,
		Busy:         h.geocode.Busy(),
	})
}
