package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testHash = "$2a$10$N9qo8uLOickgx2ZMRZoMye8fOsiTWZqYtkxvXkKm8BMzjT7t/vIdq" // bcrypt("password")

func newTestSessions(t *testing.T) *Sessions {
	t.Helper()

	sessions, err := NewSessions(SessionsConfig{
		Secret:        "test-secret",
		AdminEmail:    "admin@example.com",
		AdminPassword: testHash,
	})
	if err != nil {
		t.Fatalf("new sessions: %v", err)
	}
	return sessions
}

func TestNewSessionsRequiresSecret(t *testing.T) {
	_, err := NewSessions(SessionsConfig{AdminEmail: "admin@example.com"})
	if !errors.Is(err, ErrSecretRequired) {
		t.Fatalf("expected ErrSecretRequired, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	sessions := newTestSessions(t)

	ident, err := sessions.Login("Admin@Example.com", "password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !ident.Admin {
		t.Error("expected admin identity")
	}
	if ident.Email != "admin@example.com" {
		t.Errorf("expected normalized email, got %q", ident.Email)
	}

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "admin@example.com", "nope"},
		{"wrong email", "other@example.com", "password"},
		{"empty email", "", "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := sessions.Login(tc.email, tc.password); !errors.Is(err, ErrInvalidLogin) {
				t.Fatalf("expected ErrInvalidLogin, got %v", err)
			}
		})
	}
}

func TestSessionRoundTrip(t *testing.T) {
	sessions := newTestSessions(t)

	ident, err := sessions.Login("admin@example.com", "password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	rec := httptest.NewRecorder()
	if err := sessions.Issue(rec, ident); err != nil {
		t.Fatalf("issue session: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != DefaultCookieName {
		t.Errorf("expected cookie %q, got %q", DefaultCookieName, cookie.Name)
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}

	req := httptest.NewRequest(http.MethodGet, "/posts/admin", nil)
	req.AddCookie(cookie)

	verified, err := sessions.Verify(req)
	if err != nil {
		t.Fatalf("verify session: %v", err)
	}
	if verified.ID != ident.ID || verified.Email != ident.Email || !verified.Admin {
		t.Errorf("expected identity round trip, got %+v", verified)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	sessions := newTestSessions(t)

	issuedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sessions.now = func() time.Time { return issuedAt }

	rec := httptest.NewRecorder()
	ident := &Identity{Email: "admin@example.com", Admin: true}
	if err := sessions.Issue(rec, ident); err != nil {
		t.Fatalf("issue session: %v", err)
	}

	sessions.now = func() time.Time { return issuedAt.Add(DefaultTTL + time.Hour) }

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])

	if _, err := sessions.Verify(req); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid for expired token, got %v", err)
	}
}

func TestVerifyRejectsForgedToken(t *testing.T) {
	sessions := newTestSessions(t)

	other, err := NewSessions(SessionsConfig{
		Secret:        "different-secret",
		AdminEmail:    "admin@example.com",
		AdminPassword: testHash,
	})
	if err != nil {
		t.Fatalf("new sessions: %v", err)
	}

	rec := httptest.NewRecorder()
	ident, err := other.Login("admin@example.com", "password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := other.Issue(rec, ident); err != nil {
		t.Fatalf("issue session: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])

	if _, err := sessions.Verify(req); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid for forged token, got %v", err)
	}
}

func TestVerifyMissingCookie(t *testing.T) {
	sessions := newTestSessions(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := sessions.Verify(req); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid, got %v", err)
	}
}

func TestClearExpiresCookie(t *testing.T) {
	sessions := newTestSessions(t)

	rec := httptest.NewRecorder()
	sessions.Clear(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	if cookies[0].MaxAge >= 0 {
		t.Errorf("expected expired cookie, got MaxAge=%d", cookies[0].MaxAge)
	}
}

func TestRequireAdmin(t *testing.T) {
	if _, err := RequireAdmin(context.Background()); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}

	ctx := WithIdentity(context.Background(), &Identity{Email: "user@example.com"})
	if _, err := RequireAdmin(ctx); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}

	ctx = WithIdentity(context.Background(), &Identity{Email: "admin@example.com", Admin: true})
	ident, err := RequireAdmin(ctx)
	if err != nil {
		t.Fatalf("require admin: %v", err)
	}
	if ident.Email != "admin@example.com" {
		t.Errorf("unexpected identity: %+v", ident)
	}
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	sessions, err := NewSessions(SessionsConfig{
		Secret:        "test-secret",
		AdminEmail:    "admin@example.com",
		AdminPassword: hash,
	})
	if err != nil {
		t.Fatalf("new sessions: %v", err)
	}
	if _, err := sessions.Login("admin@example.com", "s3cret"); err != nil {
		t.Fatalf("login with hashed password: %v", err)
	}
}
