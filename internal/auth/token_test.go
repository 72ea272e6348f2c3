package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theusc6/global-impact-platform/internal/domain"
	dErrors "github.com/theusc6/global-impact-platform/pkg/domain-errors"
)

func newTestVerifier() *Verifier {
	return NewVerifier("test-signing-key", "impact-test", "impact-test")
}

func TestVerifier_RoundTrip(t *testing.T) {
	v := newTestVerifier()

	token, err := v.Sign("user-1", domain.RoleAdmin, time.Hour)
	require.NoError(t, err)

	claims, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.TokenID)
}

func TestVerifier_RejectsTampered(t *testing.T) {
	v := newTestVerifier()

	token, err := v.Sign("user-1", domain.RoleUser, time.Hour)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = v.Verify(tampered)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidCredential))
}

func TestVerifier_RejectsExpired(t *testing.T) {
	v := newTestVerifier()

	token, err := v.Sign("user-1", domain.RoleUser, -time.Minute)
	require.NoError(t, err)

	_, err = v.Verify(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidCredential))
	assert.Contains(t, err.Error(), "expired")
}

func TestVerifier_RejectsWrongKey(t *testing.T) {
	other := NewVerifier("another-key", "impact-test", "impact-test")

	token, err := other.Sign("user-1", domain.RoleUser, time.Hour)
	require.NoError(t, err)

	_, err = newTestVerifier().Verify(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidCredential))
}

func TestVerifier_RejectsMalformed(t *testing.T) {
	_, err := newTestVerifier().Verify("not-a-jwt")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidCredential))
}

func TestVerifier_RejectsMissingClaims(t *testing.T) {
	v := newTestVerifier()

	sign := func(claims tokenClaims) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte("test-signing-key"))
		require.NoError(t, err)
		return signed
	}

	expiry := jwt.NewNumericDate(time.Now().Add(time.Hour))

	// No user id.
	_, err := v.Verify(sign(tokenClaims{
		Role:             "USER",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: expiry},
	}))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidCredential))

	// Unknown role.
	_, err = v.Verify(sign(tokenClaims{
		UserID:           "user-1",
		Role:             "SUPERUSER",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: expiry},
	}))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidCredential))
}

func TestVerifier_RejectsUnsignedAlg(t *testing.T) {
	// alg=none must never validate, whatever the payload says.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, tokenClaims{
		UserID: "user-1",
		Role:   "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestVerifier().Verify(signed)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidCredential))
}
