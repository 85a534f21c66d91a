package auth

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenVerifier_EmptySecret(t *testing.T) {
	verifier, err := NewTokenVerifier("  ", "")

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Nil(t, verifier)
}

func TestTokenVerifier_IssueThenVerify(t *testing.T) {
	verifier, err := NewTokenVerifier("secret", "shop")
	require.NoError(t, err)
	userID := kernel.NewUUID()

	token, err := verifier.Issue(Identity{UserID: userID, Role: RoleAdmin}, time.Hour)
	require.NoError(t, err)

	identity, err := verifier.Verify("Bearer " + token)
	require.NoError(t, err)
	assert.True(t, identity.UserID.IsEqual(userID))
	assert.True(t, identity.IsAdmin())
}

func TestTokenVerifier_DefaultsToCustomerRole(t *testing.T) {
	verifier, err := NewTokenVerifier("secret", "")
	require.NoError(t, err)

	token, err := verifier.Issue(Identity{UserID: kernel.NewUUID()}, time.Minute)
	require.NoError(t, err)

	identity, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, RoleCustomer, identity.Role)
	assert.False(t, identity.IsAdmin())
}

func TestTokenVerifier_Rejects(t *testing.T) {
	verifier, err := NewTokenVerifier("secret", "shop")
	require.NoError(t, err)
	other, err := NewTokenVerifier("other-secret", "shop")
	require.NoError(t, err)
	userID := kernel.NewUUID()

	foreign, err := other.Issue(Identity{UserID: userID}, time.Hour)
	require.NoError(t, err)

	past := time.Now().Add(-2 * time.Hour)
	expiredIssuer := &TokenVerifier{key: []byte("secret"), issuer: "shop", now: func() time.Time { return past }}
	expired, err := expiredIssuer.Issue(Identity{UserID: userID}, time.Hour)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "shop",
			Subject:   "not-a-uuid",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	badRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "shop",
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: "root",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "shop", Subject: userID.String()},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"empty":        "",
		"garbage":      "not.a.token",
		"wrong key":    foreign,
		"expired":      expired,
		"bad subject":  badSubject,
		"unknown role": badRole,
		"missing exp":  noExpiry,
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := verifier.Verify(token)
			require.ErrorIs(t, err, errs.ErrAuthFailed)
		})
	}
}
