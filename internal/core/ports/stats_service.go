package ports

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// StatsService exposes aggregate counts.
type StatsService interface {
	TaskStats(ctx context.Context, userID int64) (*domain.TaskStats, error)
	UserStats(ctx context.Context) (*domain.UserStats, error)
}

// UserStatsCache stores admin user stats between requests. A miss is (nil, nil).
type UserStatsCache interface {
	GetUserStats(ctx context.Context) (*domain.UserStats, error)
	SaveUserStats(ctx context.Context, stats *domain.UserStats) error
}
