package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// Client-facing messages. Internal details never reach the response body.
const (
	MsgUnauthorized       = "Não autorizado"
	MsgMethodNotAllowed   = "Método não permitido"
	MsgInternalError      = "Erro interno do servidor"
	MsgForbidden          = "Acesso negado"
	MsgNotFound           = "Recurso não encontrado"
	MsgBadRequest         = "Requisição inválida"
	MsgInvalidCredentials = "Credenciais inválidas"
	MsgUserInactive       = "Usuário inativo"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "errors": [...]}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msgs := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Success: false, Errors: msgs})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, []string) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, ve.Messages
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, []string{MsgUnauthorized}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, []string{MsgInvalidCredentials}
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusUnauthorized, []string{MsgUserInactive}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, []string{MsgForbidden}
	}

	// Echo's own errors (bind failures, 404/405 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusUnauthorized:
			return he.Code, []string{MsgUnauthorized}
		case http.StatusForbidden:
			return he.Code, []string{MsgForbidden}
		case http.StatusNotFound:
			return he.Code, []string{MsgNotFound}
		case http.StatusMethodNotAllowed:
			return he.Code, []string{MsgMethodNotAllowed}
		case http.StatusBadRequest:
			return he.Code, []string{MsgBadRequest}
		}
		if he.Code < http.StatusInternalServerError {
			return he.Code, []string{http.StatusText(he.Code)}
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, []string{MsgInternalError}
}
