package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/api/metrics"
	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

// IdentityKey is the echo.Context key holding the resolved *domain.Identity.
const IdentityKey = "identity"

// SessionLoaders hands out the request-scoped web session accessor.
type SessionLoaders interface {
	Loader(c echo.Context) ports.WebSessionLoader
}

// Auth resolves the caller through the session channel, then the bearer
// channel, and injects the identity into context. No identity is answered
// with domain.ErrUnauthenticated.
func Auth(resolver ports.IdentityResolver, sessions SessionLoaders) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var load ports.WebSessionLoader
			if sessions != nil {
				load = sessions.Loader(c)
			}

			identity, err := resolver.Resolve(c.Request().Context(), load, c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				metrics.AuthResolutionsTotal.WithLabelValues("none", metrics.ResultError).Inc()
				return err
			}
			if identity == nil {
				metrics.AuthResolutionsTotal.WithLabelValues("none", metrics.ResultFailure).Inc()
				return domain.ErrUnauthenticated
			}

			metrics.AuthResolutionsTotal.WithLabelValues(identity.Channel, metrics.ResultSuccess).Inc()
			c.Set(IdentityKey, identity)

			return next(c)
		}
	}
}

// IdentityFrom returns the identity injected by Auth, or nil.
func IdentityFrom(c echo.Context) *domain.Identity {
	identity, _ := c.Get(IdentityKey).(*domain.Identity)
	return identity
}
