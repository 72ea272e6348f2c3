package auth

import (
	"context"

	"github.com/theusc6/global-impact-platform/internal/domain"
	dErrors "github.com/theusc6/global-impact-platform/pkg/domain-errors"
)

// The guard is the single enforcement point for field-level authorization.
// Handlers are wrapped at schema-registration time with Require/RequireArg
// so an unguarded privileged field is a structural omission, visible where
// the resolver set is constructed, rather than a forgotten check buried in
// a resolver body.

// Authorize checks that the request's authorization context satisfies the
// required role. The returned error never names the role that would have
// sufficed.
func Authorize(ctx context.Context, required domain.Role) error {
	ac := FromContext(ctx)
	if !ac.IsAuthenticated() || !ac.Role().Satisfies(required) {
		return dErrors.New(dErrors.CodeUnauthorized, "unauthorized")
	}
	return nil
}

// Require wraps a no-argument handler with a role requirement. On denial
// the delegate is never invoked, so no side effects can leak from a denied
// call.
func Require[T any](required domain.Role, next func(context.Context) (T, error)) func(context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		if err := Authorize(ctx, required); err != nil {
			var zero T
			return zero, err
		}
		return next(ctx)
	}
}

// RequireArg is Require for handlers that take arguments.
func RequireArg[A, T any](required domain.Role, next func(context.Context, A) (T, error)) func(context.Context, A) (T, error) {
	return func(ctx context.Context, args A) (T, error) {
		if err := Authorize(ctx, required); err != nil {
			var zero T
			return zero, err
		}
		return next(ctx, args)
	}
}
