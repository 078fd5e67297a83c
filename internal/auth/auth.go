package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotAuthenticated = errors.New("auth: authentication required")
	ErrNotAdmin         = errors.New("auth: admin privileges required")
	ErrInvalidLogin     = errors.New("auth: invalid email or password")
)

// Identity describes the authenticated caller for the current request.
type Identity struct {
	ID    uuid.UUID
	Email string
	Admin bool
}

type contextKey struct{}

// WithIdentity returns a context carrying the supplied identity.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	if identity == nil {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, identity)
}

// FromContext extracts the identity injected by the session middleware, if any.
func FromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(contextKey{}).(*Identity)
	return identity, ok && identity != nil
}

// RequireAdmin returns the admin identity on the context or fails before any
// downstream work happens. Anonymous callers get ErrNotAuthenticated;
// authenticated non-admins get ErrNotAdmin.
func RequireAdmin(ctx context.Context) (*Identity, error) {
	identity, ok := FromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}
	if !identity.Admin {
		return nil, ErrNotAdmin
	}
	return identity, nil
}
