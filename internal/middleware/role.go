package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // http package defines standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context
)

// Role claim values issued at login.
const (
	RoleAdmin   = "ADMIN"
	RoleStudent = "STUDENT"
)

// RequireRole returns a middleware that enforces that the authenticated
// caller has one of the given roles, as stored in the JWT's "role" claim.
// Requests with a missing or disallowed role are aborted with 403.  It
// assumes JWTAuth already placed the role into the context.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
