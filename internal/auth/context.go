package auth

import (
	"context"

	"github.com/theusc6/global-impact-platform/internal/domain"
)

// Context is the per-request authorization context: either anonymous or an
// authenticated {user, role} pair. It is produced fresh for every request
// by the ContextBuilder and never persisted or shared.
//
// The zero value is anonymous, so a resolver invoked without the transport
// middleware sees no privileges rather than a panic.
type Context struct {
	authenticated bool
	userID        string
	role          domain.Role
}

// Anonymous returns the unauthenticated context.
func Anonymous() Context {
	return Context{}
}

// Authenticated returns a context for a verified user. The role is derived
// solely from verified claims, never from request input.
func Authenticated(userID string, role domain.Role) Context {
	return Context{authenticated: true, userID: userID, role: role}
}

// IsAuthenticated reports whether the context carries a verified user.
func (c Context) IsAuthenticated() bool {
	return c.authenticated
}

// UserID returns the authenticated user's identifier, or "" when anonymous.
func (c Context) UserID() string {
	return c.userID
}

// Role returns the authenticated role, or "" when anonymous.
func (c Context) Role() domain.Role {
	return c.role
}

type contextKey struct{}

// WithContext injects the authorization context into a request context.
// Set by transport middleware, read by the guard.
func WithContext(ctx context.Context, ac Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

// FromContext retrieves the authorization context, defaulting to anonymous.
func FromContext(ctx context.Context) Context {
	if ac, ok := ctx.Value(contextKey{}).(Context); ok {
		return ac
	}
	return Anonymous()
}
