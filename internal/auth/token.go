// Package auth implements the request authorization pipeline: bearer token
// verification, the per-request authorization context, and the role guard
// that wraps resolvers at registration time.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/theusc6/global-impact-platform/internal/domain"
	dErrors "github.com/theusc6/global-impact-platform/pkg/domain-errors"
)

// Claims is the verified payload of a bearer token. Construction goes
// through Verifier.Verify only; missing or unknown fields fail verification
// there instead of surfacing downstream.
type Claims struct {
	UserID  string
	Role    domain.Role
	TokenID string
}

// tokenClaims is the raw JWT shape before the verification boundary.
type tokenClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier validates and decodes bearer tokens against a shared signing
// key. It is a pure function of token and key material.
type Verifier struct {
	signingKey []byte
	issuer     string
	audience   string
}

func NewVerifier(signingKey, issuer, audience string) *Verifier {
	return &Verifier{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
	}
}

// Verify parses and cryptographically checks a raw bearer token. Any
// structural, signature, or expiry problem returns an invalid_credential
// domain error; malformed input is an expected, recoverable condition.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return v.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeInvalidCredential, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeInvalidCredential, "invalid token")
	}
	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeInvalidCredential, "invalid token")
	}

	raw, ok := parsed.Claims.(*tokenClaims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeInvalidCredential, "invalid token claims")
	}
	if raw.UserID == "" {
		return nil, dErrors.New(dErrors.CodeInvalidCredential, "missing user claim")
	}
	role, err := domain.ParseRole(raw.Role)
	if err != nil {
		return nil, err
	}

	return &Claims{
		UserID:  raw.UserID,
		Role:    role,
		TokenID: raw.ID,
	}, nil
}

// Sign issues a token for the given user. Used by tests and the dev token
// mint; production token issuance lives with the identity provider.
func (v *Verifier) Sign(userID string, role domain.Role, expiresIn time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		UserID: userID,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    v.issuer,
			Audience:  []string{v.audience},
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(v.signingKey)
}
