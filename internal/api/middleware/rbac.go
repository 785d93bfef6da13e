package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := IdentityFrom(c)
			if identity == nil {
				return domain.ErrUnauthenticated
			}
			// Admins pass every role check.
			if _, ok := allowed[identity.Role]; !ok && !identity.IsAdmin() {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
