package middleware

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"
)

// RBAC restricts a route to the given roles. It reads the role placed in
// context by Auth, so it must be installed after it.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if !slices.Contains(allowedRoles, role) {
				return c.JSON(http.StatusForbidden, map[string]string{"message": "Forbidden"})
			}
			return next(c)
		}
	}
}
