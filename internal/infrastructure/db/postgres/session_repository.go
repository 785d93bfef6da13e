package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// SessionRepository stores login records in user_sessions. Lookups join
// users so that a deactivated account can never authenticate.
type SessionRepository struct {
	db DBTX
}

func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) FindIdentityBySessionToken(ctx context.Context, userID int64, token string, now time.Time) (*domain.Identity, error) {
	query :=
		`SELECT u.id, u.username, u.email, u.role
		 FROM user_sessions s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.session_token = $1
		   AND s.user_id = $2
		   AND s.is_active = TRUE
		   AND s.expires_at > $3
		   AND u.is_active = TRUE
		 LIMIT 1`

	return r.identity(ctx, query, token, userID, now)
}

func (r *SessionRepository) FindIdentityByAPIToken(ctx context.Context, token string, now time.Time) (*domain.Identity, error) {
	query :=
		`SELECT u.id, u.username, u.email, u.role
		 FROM user_sessions s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.api_token = $1
		   AND s.is_active = TRUE
		   AND s.expires_at > $2
		   AND u.is_active = TRUE
		 LIMIT 1`

	return r.identity(ctx, query, token, now)
}

func (r *SessionRepository) identity(ctx context.Context, query string, args ...any) (*domain.Identity, error) {
	id := &domain.Identity{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&id.ID, &id.Username, &id.Email, &id.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find session identity: %w", err)
	}
	return id, nil
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	query :=
		`INSERT INTO user_sessions (user_id, session_token, api_token, expires_at, is_active, ip_address, user_agent)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`

	apiToken := sql.NullString{String: s.APIToken, Valid: s.APIToken != ""}

	created := *s
	err := r.db.QueryRowContext(ctx, query,
		s.UserID, s.SessionToken, apiToken, s.ExpiresAt, s.IsActive, s.IPAddress, s.UserAgent,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return &created, nil
}

func (r *SessionRepository) Deactivate(ctx context.Context, userID int64, sessionToken string) error {
	query :=
		`UPDATE user_sessions SET is_active = FALSE
		 WHERE user_id = $1 AND session_token = $2 AND is_active = TRUE`

	return r.deactivate(ctx, query, userID, sessionToken)
}

func (r *SessionRepository) DeactivateByAPIToken(ctx context.Context, userID int64, apiToken string) error {
	query :=
		`UPDATE user_sessions SET is_active = FALSE
		 WHERE user_id = $1 AND api_token = $2 AND is_active = TRUE`

	return r.deactivate(ctx, query, userID, apiToken)
}

func (r *SessionRepository) deactivate(ctx context.Context, query string, userID int64, token string) error {
	res, err := r.db.ExecContext(ctx, query, userID, token)
	if err != nil {
		return fmt.Errorf("deactivate session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deactivate session: %w", err)
	}
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}
