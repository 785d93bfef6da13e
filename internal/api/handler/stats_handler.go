package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/api/metrics"
	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

type StatsHandler struct {
	statsService ports.StatsService
}

func NewStatsHandler(statsService ports.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

type taskStatsResponse struct {
	Success bool `json:"success"`
	domain.TaskStats
}

type userStatsResponse struct {
	Success bool `json:"success"`
	domain.UserStats
}

// TaskStats returns aggregate task counts for the authenticated caller.
//
// @Summary      Task statistics
// @Description  Authenticates through the web session or a bearer API token.
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  taskStatsResponse
// @Failure      401  {object}  errorBody
// @Failure      405  {object}  errorBody
// @Failure      500  {object}  errorBody
// @Router       /api/stats [get]
func (h *StatsHandler) TaskStats(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	stats, err := h.statsService.TaskStats(c.Request().Context(), identity.ID)
	if err != nil {
		metrics.StatsRequestsTotal.WithLabelValues("tasks", metrics.ResultError).Inc()
		return err
	}

	metrics.StatsRequestsTotal.WithLabelValues("tasks", metrics.ResultSuccess).Inc()
	return c.JSON(http.StatusOK, taskStatsResponse{Success: true, TaskStats: *stats})
}

// UserStats returns account counts. Admin only.
//
// @Summary      User statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userStatsResponse
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Failure      500  {object}  errorBody
// @Router       /api/admin/users/stats [get]
func (h *StatsHandler) UserStats(c echo.Context) error {
	stats, err := h.statsService.UserStats(c.Request().Context())
	if err != nil {
		metrics.StatsRequestsTotal.WithLabelValues("users", metrics.ResultError).Inc()
		return err
	}

	metrics.StatsRequestsTotal.WithLabelValues("users", metrics.ResultSuccess).Inc()
	return c.JSON(http.StatusOK, userStatsResponse{Success: true, UserStats: *stats})
}
