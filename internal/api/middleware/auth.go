package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/renova/storefront/internal/core/ports"
)

// ContextKeyUserID is set on the echo.Context once a session is confirmed.
const ContextKeyUserID = "user_id"

// RequireSession rejects requests while nobody is signed in, or when the held
// credential carries an exp claim that has already passed.
func RequireSession(session ports.SessionService) echo.MiddlewareFunc {
	return requireSession(session, time.Now)
}

func requireSession(session ports.SessionService, now func() time.Time) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := session.Identity()
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
			}
			if exp, ok := session.Credential().ExpiresAt(); ok && !exp.After(now()) {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}

			c.Set(ContextKeyUserID, id.ID)
			return next(c)
		}
	}
}
