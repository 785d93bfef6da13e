package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

type statsService struct {
	tasks ports.TaskRepository
	users ports.UserRepository
	cache ports.UserStatsCache
	now   func() time.Time
	log   zerolog.Logger
}

// NewStatsService returns a StatsService. cache may be nil.
func NewStatsService(tasks ports.TaskRepository, users ports.UserRepository, cache ports.UserStatsCache, log zerolog.Logger) ports.StatsService {
	return &statsService{
		tasks: tasks,
		users: users,
		cache: cache,
		now:   time.Now,
		log:   log,
	}
}

func (s *statsService) TaskStats(ctx context.Context, userID int64) (*domain.TaskStats, error) {
	stats, err := s.tasks.StatsForUser(ctx, userID, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("task stats: %w", err)
	}
	stats.ComputeCompletionRate()

	s.log.Debug().
		Int64("user_id", userID).
		Int64("total", stats.Total).
		Int64("completed", stats.Completed).
		Msg("task stats computed")

	return stats, nil
}

func (s *statsService) UserStats(ctx context.Context) (*domain.UserStats, error) {
	if s.cache != nil {
		cached, err := s.cache.GetUserStats(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("user stats cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	now := s.now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats, err := s.users.Stats(ctx, startOfMonth)
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SaveUserStats(ctx, stats); err != nil {
			s.log.Warn().Err(err).Msg("user stats cache write failed")
		}
	}
	return stats, nil
}
