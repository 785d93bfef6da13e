package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

type TaskRepository struct {
	db DBTX
}

func NewTaskRepository(db DBTX) *TaskRepository {
	return &TaskRepository{db: db}
}

// StatsForUser aggregates the user's tasks in a single scan. Overdue and high
// priority only count open tasks.
func (r *TaskRepository) StatsForUser(ctx context.Context, userID int64, now time.Time) (*domain.TaskStats, error) {
	query :=
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE status = $3),
		        COUNT(*) FILTER (WHERE status = $4),
		        COUNT(*) FILTER (WHERE status = $5),
		        COUNT(*) FILTER (WHERE status = $6),
		        COUNT(*) FILTER (WHERE due_date < $2 AND status IN ($3, $4)),
		        COUNT(*) FILTER (WHERE priority = $7 AND status IN ($3, $4))
		 FROM tasks
		 WHERE user_id = $1`

	var s domain.TaskStats
	if err := r.db.QueryRowContext(ctx, query,
		userID, now,
		string(domain.TaskPending), string(domain.TaskInProgress),
		string(domain.TaskCompleted), string(domain.TaskCancelled),
		domain.PriorityHigh,
	).Scan(
		&s.Total, &s.Pending, &s.InProgress, &s.Completed, &s.Cancelled, &s.Overdue, &s.HighPriority,
	); err != nil {
		return nil, fmt.Errorf("task stats: %w", err)
	}
	return &s, nil
}
