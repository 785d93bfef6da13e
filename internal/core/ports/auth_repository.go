package ports

import (
	"context"
	"time"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// UserRepository defines the persistence operations on accounts.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Stats(ctx context.Context, since time.Time) (*domain.UserStats, error)
}

// SessionRepository reads and writes session/token records.
//
// The two Find methods join against users and only return identities whose
// record is active, unexpired at now, and whose user is active. A miss is
// reported as (nil, nil).
type SessionRepository interface {
	FindIdentityBySessionToken(ctx context.Context, userID int64, token string, now time.Time) (*domain.Identity, error)
	FindIdentityByAPIToken(ctx context.Context, token string, now time.Time) (*domain.Identity, error)
	Create(ctx context.Context, session *domain.Session) (*domain.Session, error)
	Deactivate(ctx context.Context, userID int64, sessionToken string) error
	DeactivateByAPIToken(ctx context.Context, userID int64, apiToken string) error
}
