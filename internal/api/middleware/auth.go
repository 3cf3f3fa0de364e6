package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/taskdeck/taskdeck-api/internal/core/domain"
	"github.com/taskdeck/taskdeck-api/internal/core/ports"
)

// SessionCookie is the name of the HTTP-only cookie carrying the signed
// session token.
const SessionCookie = "session_token"

// Authenticate extracts the session cookie on every request, verifies it and
// injects the resolved Identity (and the raw token, for sign-out) into the
// echo context. A missing or rejected token leaves the request
// unauthenticated without failing it; protected routes are gated separately
// by RequireAuth. This is the single place tokens are parsed.
func Authenticate(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			identity, err := auth.Verify(c.Request().Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					return next(c)
				}
				// Storage failure, not a rejection.
				return err
			}

			c.Set("identity", *identity)
			c.Set("session_token", cookie.Value)

			return next(c)
		}
	}
}

// RequireAuth rejects requests that carry no resolved Identity.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get("identity").(domain.Identity); !ok {
				return domain.ErrUnauthenticated
			}
			return next(c)
		}
	}
}
