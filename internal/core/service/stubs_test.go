package service

import (
	"context"
	"strings"
	"time"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[int64]*domain.User
	nextID    int64
	findErr   error
	createErr error
	stats     *domain.UserStats
	statsErr  error
	statsHits int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	if u.ID == 0 {
		u.ID = r.nextID
	}
	if u.ID >= r.nextID {
		r.nextID = u.ID + 1
	}
	r.users[u.ID] = cloneUser(u)
	return u
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	copy.ID = 0
	return cloneUser(r.add(copy)), nil
}

func (r *stubUserRepo) Stats(_ context.Context, _ time.Time) (*domain.UserStats, error) {
	r.statsHits++
	if r.statsErr != nil {
		return nil, r.statsErr
	}
	clone := *r.stats
	return &clone, nil
}

// stubSessionRepo evaluates the same conditions as the SQL joins.
type stubSessionRepo struct {
	users    *stubUserRepo
	sessions []*domain.Session
	findErr  error
	created  []*domain.Session
	revoked  []string
}

func newStubSessionRepo(users *stubUserRepo) *stubSessionRepo {
	return &stubSessionRepo{users: users}
}

func (r *stubSessionRepo) identityFor(s *domain.Session, now time.Time) *domain.Identity {
	if !s.ValidAt(now) {
		return nil
	}
	u, ok := r.users.users[s.UserID]
	if !ok || !u.IsActive {
		return nil
	}
	return &domain.Identity{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

func (r *stubSessionRepo) FindIdentityBySessionToken(_ context.Context, userID int64, token string, now time.Time) (*domain.Identity, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, s := range r.sessions {
		if s.SessionToken == token && s.UserID == userID {
			return r.identityFor(s, now), nil
		}
	}
	return nil, nil
}

func (r *stubSessionRepo) FindIdentityByAPIToken(_ context.Context, token string, now time.Time) (*domain.Identity, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, s := range r.sessions {
		if s.APIToken == token {
			return r.identityFor(s, now), nil
		}
	}
	return nil, nil
}

func (r *stubSessionRepo) Create(_ context.Context, s *domain.Session) (*domain.Session, error) {
	clone := *s
	clone.ID = int64(len(r.created) + 1)
	r.created = append(r.created, &clone)
	r.sessions = append(r.sessions, &clone)
	return &clone, nil
}

func (r *stubSessionRepo) Deactivate(_ context.Context, userID int64, token string) error {
	for _, s := range r.sessions {
		if s.UserID == userID && s.SessionToken == token && s.IsActive {
			s.IsActive = false
			r.revoked = append(r.revoked, token)
			return nil
		}
	}
	return domain.ErrSessionNotFound
}

func (r *stubSessionRepo) DeactivateByAPIToken(_ context.Context, userID int64, token string) error {
	for _, s := range r.sessions {
		if s.UserID == userID && s.APIToken == token && s.IsActive {
			s.IsActive = false
			r.revoked = append(r.revoked, token)
			return nil
		}
	}
	return domain.ErrSessionNotFound
}

type stubTaskRepo struct {
	stats   *domain.TaskStats
	err     error
	gotUser int64
	gotNow  time.Time
}

func (r *stubTaskRepo) StatsForUser(_ context.Context, userID int64, now time.Time) (*domain.TaskStats, error) {
	r.gotUser = userID
	r.gotNow = now
	if r.err != nil {
		return nil, r.err
	}
	clone := *r.stats
	return &clone, nil
}

type stubStatsCache struct {
	stats   *domain.UserStats
	getErr  error
	saveErr error
	saved   *domain.UserStats
}

func (c *stubStatsCache) GetUserStats(_ context.Context) (*domain.UserStats, error) {
	return c.stats, c.getErr
}

func (c *stubStatsCache) SaveUserStats(_ context.Context, stats *domain.UserStats) error {
	c.saved = stats
	return c.saveErr
}
