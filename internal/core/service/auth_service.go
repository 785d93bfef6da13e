package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

const tokenBytes = 32

// AuthService implements login and logout over persisted session records.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	tokenTTL time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionRepository, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:    users,
		sessions: sessions,
		tokenTTL: tokenTTL,
		now:      time.Now,
		log:      log,
	}
}

func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	sessionToken, err := newToken()
	if err != nil {
		return nil, err
	}
	apiToken, err := newToken()
	if err != nil {
		return nil, err
	}

	created, err := s.sessions.Create(ctx, &domain.Session{
		UserID:       user.ID,
		SessionToken: sessionToken,
		APIToken:     apiToken,
		ExpiresAt:    s.now().Add(s.tokenTTL).UTC(),
		IsActive:     true,
		IPAddress:    in.IPAddress,
		UserAgent:    in.UserAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Int64("user_id", user.ID).Str("ip", in.IPAddress).Msg("user logged in")

	return &ports.LoginResult{
		User:         user,
		SessionToken: created.SessionToken,
		APIToken:     created.APIToken,
		ExpiresAt:    created.ExpiresAt,
	}, nil
}

// Logout deactivates the session record matched by the caller's credential.
// Both tokens of the record stop working. An already revoked record is not an
// error.
func (s *AuthService) Logout(ctx context.Context, identity *domain.Identity) error {
	if identity == nil || identity.Token == "" {
		return nil
	}

	var err error
	switch identity.Channel {
	case domain.ChannelSession:
		err = s.sessions.Deactivate(ctx, identity.ID, identity.Token)
	case domain.ChannelBearer:
		err = s.sessions.DeactivateByAPIToken(ctx, identity.ID, identity.Token)
	default:
		return nil
	}
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil
		}
		return fmt.Errorf("logout: %w", err)
	}

	s.log.Info().Int64("user_id", identity.ID).Str("channel", identity.Channel).Msg("user logged out")
	return nil
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
