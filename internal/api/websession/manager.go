// Package websession implements the server-side web session: a signed cookie
// carrying an opaque session id whose values are kept in a Store.
package websession

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

const (
	DefaultCookieName = "taskboard_session"
	defaultTTL        = 24 * time.Hour
)

// Store persists session values by session id. Get returns (nil, nil) for an
// unknown id.
type Store interface {
	Get(ctx context.Context, id string) (*domain.WebSession, error)
	Save(ctx context.Context, id string, ws *domain.WebSession) error
	Delete(ctx context.Context, id string) error
}

type Options struct {
	CookieName string
	Secret     []byte
	TTL        time.Duration
	Secure     bool
}

type Manager struct {
	store Store
	opts  Options
	now   func() time.Time
}

func NewManager(store Store, opts Options) (*Manager, error) {
	if len(opts.Secret) == 0 {
		return nil, errors.New("websession: empty secret")
	}
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	return &Manager{store: store, opts: opts, now: time.Now}, nil
}

// Loader returns the request's lazy session accessor. The cookie is parsed
// and the store consulted on the first call only.
func (m *Manager) Loader(c echo.Context) ports.WebSessionLoader {
	var (
		loaded bool
		ws     *domain.WebSession
		err    error
	)
	return func(ctx context.Context) (*domain.WebSession, error) {
		if !loaded {
			ws, err = m.Load(ctx, c)
			loaded = true
		}
		return ws, err
	}
}

// Load reads the session referenced by the request cookie. A missing, forged
// or expired cookie yields (nil, nil).
func (m *Manager) Load(ctx context.Context, c echo.Context) (*domain.WebSession, error) {
	sid := m.sessionID(c)
	if sid == "" {
		return nil, nil
	}
	return m.store.Get(ctx, sid)
}

// Start creates a new session holding ws and sets the cookie on the response.
func (m *Manager) Start(ctx context.Context, c echo.Context, ws *domain.WebSession) error {
	sid := uuid.NewString()
	expires := m.now().Add(m.opts.TTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sid,
		IssuedAt:  jwt.NewNumericDate(m.now()),
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	signed, err := token.SignedString(m.opts.Secret)
	if err != nil {
		return fmt.Errorf("websession sign: %w", err)
	}

	if err := m.store.Save(ctx, sid, ws); err != nil {
		return err
	}

	c.SetCookie(m.cookie(signed, expires))
	return nil
}

// Destroy removes the current session, if any, and expires the cookie.
func (m *Manager) Destroy(ctx context.Context, c echo.Context) error {
	if sid := m.sessionID(c); sid != "" {
		if err := m.store.Delete(ctx, sid); err != nil {
			return err
		}
	}
	ck := m.cookie("", time.Unix(0, 0))
	ck.MaxAge = -1
	c.SetCookie(ck)
	return nil
}

func (m *Manager) sessionID(c echo.Context) string {
	ck, err := c.Cookie(m.opts.CookieName)
	if err != nil || ck.Value == "" {
		return ""
	}

	var claims jwt.RegisteredClaims
	_, err = jwt.ParseWithClaims(ck.Value, &claims, func(*jwt.Token) (any, error) {
		return m.opts.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return ""
	}
	return claims.Subject
}

func (m *Manager) cookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
