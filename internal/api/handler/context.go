package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/taskdeck/taskdeck-api/internal/core/domain"
)

// ctxIdentity extracts the Identity injected by the Authenticate middleware.
// Handlers behind RequireAuth always find one; the check is a fast-fail
// guard against a route wired without the gate.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := c.Get("identity").(domain.Identity)
	if !ok {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return identity, nil
}

// ctxToken returns the raw session token of the current request.
func ctxToken(c echo.Context) string {
	token, _ := c.Get("session_token").(string)
	return token
}
