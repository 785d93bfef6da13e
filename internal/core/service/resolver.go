package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

var bearerPattern = regexp.MustCompile(`(?i)^bearer\s+(\S+)$`)

// Resolver determines the calling identity from the server-side session first
// and the bearer token second. It never writes to either store.
type Resolver struct {
	sessions ports.SessionRepository
	now      func() time.Time
	log      zerolog.Logger
}

// NewResolver returns a Resolver using the wall clock.
func NewResolver(sessions ports.SessionRepository, log zerolog.Logger) *Resolver {
	return &Resolver{sessions: sessions, now: time.Now, log: log}
}

// WithClock replaces the time source. Used by tests.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// Resolve returns the caller or (nil, nil) when neither channel identifies one.
// Only store failures are returned as errors.
func (r *Resolver) Resolve(ctx context.Context, load ports.WebSessionLoader, authorization string) (*domain.Identity, error) {
	now := r.now()

	identity, err := r.fromSession(ctx, load, now)
	if err != nil {
		return nil, err
	}
	if identity != nil {
		return identity, nil
	}

	return r.fromBearer(ctx, authorization, now)
}

func (r *Resolver) fromSession(ctx context.Context, load ports.WebSessionLoader, now time.Time) (*domain.Identity, error) {
	if load == nil {
		return nil, nil
	}

	ws, err := load(ctx)
	if err != nil {
		// A broken session backend must not lock out bearer clients.
		r.log.Warn().Err(err).Msg("web session unavailable, skipping session channel")
		return nil, nil
	}
	if !ws.Complete() {
		return nil, nil
	}

	identity, err := r.sessions.FindIdentityBySessionToken(ctx, ws.UserID, ws.SessionToken, now)
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	if identity == nil {
		r.log.Debug().Int64("user_id", ws.UserID).Msg("session token rejected")
		return nil, nil
	}

	identity.Channel = domain.ChannelSession
	identity.Token = ws.SessionToken
	return identity, nil
}

func (r *Resolver) fromBearer(ctx context.Context, authorization string, now time.Time) (*domain.Identity, error) {
	token := BearerToken(authorization)
	if token == "" {
		return nil, nil
	}

	identity, err := r.sessions.FindIdentityByAPIToken(ctx, token, now)
	if err != nil {
		return nil, fmt.Errorf("resolve bearer: %w", err)
	}
	if identity == nil {
		r.log.Debug().Msg("bearer token rejected")
		return nil, nil
	}

	identity.Channel = domain.ChannelBearer
	identity.Token = token
	return identity, nil
}

// BearerToken extracts the token from an Authorization header value. The
// scheme keyword is matched case-insensitively; anything else yields "".
func BearerToken(header string) string {
	m := bearerPattern.FindStringSubmatch(strings.TrimSpace(header))
	if m == nil {
		return ""
	}
	return m[1]
}
