package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxAccess extracts the identity claims injected by the Auth middleware and
// performs a fast-fail check before any service call: role must be non-empty
// (presence proves the middleware ran). The sector list may legitimately be
// empty — such a user simply sees empty dashboards.
func ctxAccess(c echo.Context) (userID, role string, sectors []string, err error) {
	role, _ = c.Get("role").(string)
	if role == "" {
		return "", "", nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, _ = c.Get("user_id").(string)
	sectors, _ = c.Get("sectors").([]string)
	return userID, role, sectors, nil
}
