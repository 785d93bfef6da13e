package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/api/middleware"
	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

type stubAuthService struct {
	loginFn  func(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error)
	logoutFn func(ctx context.Context, identity *domain.Identity) error
}

func (s *stubAuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	return s.loginFn(ctx, in)
}

func (s *stubAuthService) Logout(ctx context.Context, identity *domain.Identity) error {
	return s.logoutFn(ctx, identity)
}

type stubWebSessions struct {
	started   *domain.WebSession
	destroyed bool
	startErr  error
}

func (s *stubWebSessions) Start(_ context.Context, _ echo.Context, ws *domain.WebSession) error {
	s.started = ws
	return s.startErr
}

func (s *stubWebSessions) Destroy(context.Context, echo.Context) error {
	s.destroyed = true
	return nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	expires := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
			if in.Email != "grace@example.com" || in.Password != "Secret@123" {
				t.Fatalf("unexpected credentials: %+v", in)
			}
			if in.UserAgent != "test-agent" {
				t.Fatalf("user agent not forwarded: %q", in.UserAgent)
			}
			return &ports.LoginResult{
				User:         &domain.User{ID: 7, Username: "grace", Email: in.Email, Role: domain.RoleAdmin},
				SessionToken: "sess-tok",
				APIToken:     "abc123",
				ExpiresAt:    expires,
			}, nil
		},
	}
	sessions := &stubWebSessions{}
	handler := NewAuthHandler(stub, sessions, zerolog.Nop())

	req := jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"grace@example.com","password":"Secret@123"}`)
	req.Header.Set("User-Agent", "test-agent")
	rec := httptest.NewRecorder()

	if err := handler.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true || resp["api_token"] != "abc123" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "grace" {
		t.Fatalf("expected user in response: %+v", resp)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash must not be serialised")
	}

	if sessions.started == nil || sessions.started.UserID != 7 || sessions.started.SessionToken != "sess-tok" {
		t.Fatalf("web session not started with session token: %+v", sessions.started)
	}
}

func TestAuthHandler_Login_WebSessionFailureStillSucceeds(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
			return &ports.LoginResult{User: &domain.User{ID: 1}, SessionToken: "s", APIToken: "a"}, nil
		},
	}
	handler := NewAuthHandler(stub, &stubWebSessions{startErr: errors.New("redis down")}, zerolog.Nop())

	rec := httptest.NewRecorder()
	req := jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"a@example.com","password":"x"}`)
	if err := handler.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	sessions := &stubWebSessions{}
	handler := NewAuthHandler(stub, sessions, zerolog.Nop())

	req := jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"a@example.com","password":"wrong"}`)
	err := handler.Login(e.NewContext(req, httptest.NewRecorder()))
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if sessions.started != nil {
		t.Fatalf("web session must not start on failure")
	}
}

func TestAuthHandler_Login_ValidationError(t *testing.T) {
	e := newEcho()
	handler := NewAuthHandler(&stubAuthService{}, &stubWebSessions{}, zerolog.Nop())

	req := jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"not-an-email"}`)
	err := handler.Login(e.NewContext(req, httptest.NewRecorder()))

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %v", ve.Messages)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newEcho()
	handler := NewAuthHandler(&stubAuthService{}, &stubWebSessions{}, zerolog.Nop())

	req := jsonRequest(http.MethodPost, "/api/auth/login", `{"email":`)
	err := handler.Login(e.NewContext(req, httptest.NewRecorder()))

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Logout_RevokesCallerCredential(t *testing.T) {
	tests := []struct {
		name    string
		channel string
		token   string
	}{
		{"session", domain.ChannelSession, "sess-tok"},
		{"bearer", domain.ChannelBearer, "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho()
			var got *domain.Identity
			stub := &stubAuthService{
				logoutFn: func(ctx context.Context, identity *domain.Identity) error {
					got = identity
					return nil
				},
			}
			sessions := &stubWebSessions{}
			handler := NewAuthHandler(stub, sessions, zerolog.Nop())

			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil), rec)
			c.Set(middleware.IdentityKey, &domain.Identity{ID: 7, Channel: tt.channel, Token: tt.token})

			if err := handler.Logout(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if got == nil || got.ID != 7 || got.Channel != tt.channel || got.Token != tt.token {
				t.Fatalf("logout called with %+v", got)
			}
			if !sessions.destroyed {
				t.Fatalf("web session not destroyed")
			}
		})
	}
}

func TestAuthHandler_Logout_ServiceError(t *testing.T) {
	e := newEcho()
	boom := errors.New("db down")
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, identity *domain.Identity) error { return boom },
	}
	sessions := &stubWebSessions{}
	handler := NewAuthHandler(stub, sessions, zerolog.Nop())

	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil), httptest.NewRecorder())
	c.Set(middleware.IdentityKey, &domain.Identity{ID: 7, Channel: domain.ChannelBearer, Token: "abc123"})

	if err := handler.Logout(c); !errors.Is(err, boom) {
		t.Fatalf("expected service error, got %v", err)
	}
	if sessions.destroyed {
		t.Fatalf("web session must survive a failed revocation")
	}
}

func TestAuthHandler_Logout_WithoutIdentity(t *testing.T) {
	e := newEcho()
	handler := NewAuthHandler(&stubAuthService{}, &stubWebSessions{}, zerolog.Nop())

	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil), httptest.NewRecorder())
	if err := handler.Logout(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
