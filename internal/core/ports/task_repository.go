package ports

import (
	"context"
	"time"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// TaskRepository defines read access to tasks needed by the stats endpoint.
type TaskRepository interface {
	StatsForUser(ctx context.Context, userID int64, now time.Time) (*domain.TaskStats, error)
}
