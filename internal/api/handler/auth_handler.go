package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/api/metrics"
	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

// WebSessions is the part of the web session manager used by AuthHandler.
type WebSessions interface {
	Start(ctx context.Context, c echo.Context, ws *domain.WebSession) error
	Destroy(ctx context.Context, c echo.Context) error
}

type AuthHandler struct {
	authService ports.AuthService
	sessions    WebSessions
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, sessions WebSessions, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, log: log}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Success   bool         `json:"success"`
	User      *domain.User `json:"user"`
	APIToken  string       `json:"api_token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// Login authenticates a user, opens a web session and returns an API token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Failure      422   {object}  errorBody
// @Failure      500   {object}  errorBody
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	res, err := h.authService.Login(ctx, ports.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	})
	if err != nil {
		result := metrics.ResultError
		if isAuthFailure(err) {
			result = metrics.ResultFailure
		}
		metrics.LoginsTotal.WithLabelValues(result).Inc()
		return err
	}

	if err := h.sessions.Start(ctx, c, &domain.WebSession{
		UserID:       res.User.ID,
		SessionToken: res.SessionToken,
	}); err != nil {
		// The API token is already valid; only the cookie channel is lost.
		h.log.Error().Err(err).Int64("user_id", res.User.ID).Msg("web session start failed")
	}

	metrics.LoginsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Success:   true,
		User:      res.User,
		APIToken:  res.APIToken,
		ExpiresAt: res.ExpiresAt,
	})
}

// Logout revokes the caller's session record and clears the web session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Failure      401  {object}  errorBody
// @Failure      500  {object}  errorBody
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.authService.Logout(ctx, identity); err != nil {
		return err
	}

	if err := h.sessions.Destroy(ctx, c); err != nil {
		h.log.Warn().Err(err).Int64("user_id", identity.ID).Msg("web session destroy failed")
	}

	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func isAuthFailure(err error) bool {
	return errorsIsAny(err, domain.ErrInvalidCredentials, domain.ErrUserInactive) || isValidation(err)
}
