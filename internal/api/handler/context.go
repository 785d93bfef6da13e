package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/api/middleware"
	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// ctxIdentity returns the identity injected by the Auth middleware. Its absence
// means the route was registered without Auth; treat it as unauthenticated.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}
	return identity, nil
}
