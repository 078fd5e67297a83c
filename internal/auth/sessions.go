package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/goliatone/go-blog/internal/identity"
)

const (
	// DefaultCookieName is used when SessionsConfig leaves CookieName empty.
	DefaultCookieName = "blog_session"
	// DefaultTTL bounds how long an admin session stays valid.
	DefaultTTL = 24 * time.Hour
)

var (
	ErrSecretRequired = errors.New("auth: session secret is required")
	ErrSessionInvalid = errors.New("auth: session token is invalid")
)

// SessionsConfig captures the inputs needed to mint and verify session cookies.
type SessionsConfig struct {
	Secret        string
	CookieName    string
	TTL           time.Duration
	AdminEmail    string
	AdminPassword string
	Secure        bool
}

// Sessions issues and verifies the signed cookie that carries the admin
// identity between requests. Tokens are HS256 JWTs; the admin credential is a
// single configured email plus bcrypt password hash.
type Sessions struct {
	secret        []byte
	cookieName    string
	ttl           time.Duration
	adminEmail    string
	adminPassword string
	secure        bool
	now           func() time.Time
}

// NewSessions validates the configuration and builds a session manager.
func NewSessions(cfg SessionsConfig) (*Sessions, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, ErrSecretRequired
	}

	cookieName := strings.TrimSpace(cfg.CookieName)
	if cookieName == "" {
		cookieName = DefaultCookieName
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Sessions{
		secret:        []byte(secret),
		cookieName:    cookieName,
		ttl:           ttl,
		adminEmail:    strings.ToLower(strings.TrimSpace(cfg.AdminEmail)),
		adminPassword: cfg.AdminPassword,
		secure:        cfg.Secure,
		now:           time.Now,
	}, nil
}

// Login verifies the supplied credentials against the configured admin
// account and returns the admin identity. The stored password must be a
// bcrypt hash; plaintext configuration values never match.
func (s *Sessions) Login(email, password string) (*Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || email != s.adminEmail {
		return nil, ErrInvalidLogin
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPassword), []byte(password)); err != nil {
		return nil, ErrInvalidLogin
	}
	return &Identity{
		ID:    identity.AdminUUID(email),
		Email: email,
		Admin: true,
	}, nil
}

// Issue writes a session cookie for the supplied identity onto the response.
func (s *Sessions) Issue(w http.ResponseWriter, ident *Identity) error {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   ident.ID.String(),
		Issuer:    "go-blog",
		Audience:  jwt.ClaimStrings{"go-blog/admin"},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: claims,
		Email:            ident.Email,
		Admin:            ident.Admin,
	}).SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("sign session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie.
func (s *Sessions) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Verify decodes the session cookie on the request. Requests without a valid
// cookie return ErrSessionInvalid so callers can treat them as anonymous.
func (s *Sessions) Verify(r *http.Request) (*Identity, error) {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return nil, ErrSessionInvalid
	}

	var claims sessionClaims
	token, err := jwt.ParseWithClaims(cookie.Value, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, ErrSessionInvalid
	}

	id, err := parseSubject(claims.Subject)
	if err != nil {
		return nil, ErrSessionInvalid
	}

	return &Identity{
		ID:    id,
		Email: claims.Email,
		Admin: claims.Admin,
	}, nil
}

func parseSubject(subject string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(subject))
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

// HashPassword produces the bcrypt hash expected in SessionsConfig.AdminPassword.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}
