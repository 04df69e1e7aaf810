package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/renova/storefront/internal/core/domain"
	"github.com/renova/storefront/internal/core/ports"
)

// RBAC lets the request through when the signed-in identity holds any of the
// allowed roles.
func RBAC(session ports.SessionService, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := session.Identity()
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
			}
			for _, r := range allowedRoles {
				if id.HasRole(r) {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}
