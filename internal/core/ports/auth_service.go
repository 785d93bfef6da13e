package ports

import (
	"context"
	"time"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// LoginInput carries credentials and client metadata for a login attempt.
type LoginInput struct {
	Email     string
	Password  string
	IPAddress string
	UserAgent string
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	User         *domain.User
	SessionToken string
	APIToken     string
	ExpiresAt    time.Time
}

type AuthService interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	// Logout revokes the record behind the credential that resolved identity.
	Logout(ctx context.Context, identity *domain.Identity) error
}

// WebSessionLoader yields the request's server-side session, initialising the
// session mechanism on first use. A request without a session yields (nil, nil).
type WebSessionLoader func(ctx context.Context) (*domain.WebSession, error)

// IdentityResolver decides who is calling. (nil, nil) means no identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, session WebSessionLoader, authorization string) (*domain.Identity, error)
}
