package auth

import (
	"context"
	"log/slog"

	"github.com/theusc6/global-impact-platform/internal/platform/metrics"
)

// TokenVerifier validates raw bearer tokens into verified claims.
type TokenVerifier interface {
	Verify(tokenString string) (*Claims, error)
}

// RevocationChecker reports whether a token has been revoked by its ID.
type RevocationChecker interface {
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

// ContextBuilder turns an optional bearer token into an authorization
// Context. It never fails: an absent, invalid, expired, or revoked token
// degrades to anonymous access (logged), because most of the schema is
// publicly readable. Operations that require authentication are then denied
// by the guard, not here.
type ContextBuilder struct {
	verifier    TokenVerifier
	revocations RevocationChecker
	log         *slog.Logger
	metrics     *metrics.Metrics
}

// NewContextBuilder wires the builder. revocations may be nil when no
// denylist backend is configured.
func NewContextBuilder(verifier TokenVerifier, revocations RevocationChecker, log *slog.Logger, m *metrics.Metrics) *ContextBuilder {
	return &ContextBuilder{
		verifier:    verifier,
		revocations: revocations,
		log:         log,
		metrics:     m,
	}
}

// Build produces the per-request authorization context. rawToken is the
// bearer credential already stripped of its "Bearer " prefix, or "" when
// the request carried none.
func (b *ContextBuilder) Build(ctx context.Context, rawToken string) Context {
	if rawToken == "" {
		return Anonymous()
	}

	claims, err := b.verifier.Verify(rawToken)
	if err != nil {
		b.log.WarnContext(ctx, "invalid bearer token, continuing anonymous", "error", err)
		b.metrics.IncrementTokenVerifyFailure()
		return Anonymous()
	}

	if b.revocations != nil {
		revoked, err := b.revocations.IsTokenRevoked(ctx, claims.TokenID)
		if err != nil {
			b.log.ErrorContext(ctx, "token revocation check failed, continuing anonymous",
				"error", err,
				"token_id", claims.TokenID,
			)
			return Anonymous()
		}
		if revoked {
			b.log.WarnContext(ctx, "revoked bearer token, continuing anonymous",
				"token_id", claims.TokenID,
			)
			b.metrics.IncrementTokenVerifyFailure()
			return Anonymous()
		}
	}

	return Authenticated(claims.UserID, claims.Role)
}
