package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const defaultAllowHeaders = "Content-Type, Authorization, X-Requested-With"

// CORSConfig describes the headers emitted by CORS.
type CORSConfig struct {
	AllowOrigin  string
	AllowMethods string
	AllowHeaders string
	// PathMethods overrides AllowMethods for exact request paths.
	PathMethods map[string]string
}

// CORS writes the CORS headers on every response and answers preflight
// OPTIONS requests itself with 200 and an empty body.
func CORS(cfg CORSConfig) echo.MiddlewareFunc {
	if cfg.AllowOrigin == "" {
		cfg.AllowOrigin = "*"
	}
	if cfg.AllowMethods == "" {
		cfg.AllowMethods = "GET, OPTIONS"
	}
	if cfg.AllowHeaders == "" {
		cfg.AllowHeaders = defaultAllowHeaders
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			methods := cfg.AllowMethods
			if m, ok := cfg.PathMethods[c.Request().URL.Path]; ok {
				methods = m
			}

			h := c.Response().Header()
			h.Set(echo.HeaderAccessControlAllowOrigin, cfg.AllowOrigin)
			h.Set(echo.HeaderAccessControlAllowMethods, methods)
			h.Set(echo.HeaderAccessControlAllowHeaders, cfg.AllowHeaders)

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusOK)
			}
			return next(c)
		}
	}
}
