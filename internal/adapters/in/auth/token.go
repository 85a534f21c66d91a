// Package auth verifies the bearer tokens customers, observers and administrators present.
//
// Tokens are HS256 JWTs issued by the external identity service. The subject claim carries the
// user id and the role claim selects customer or admin access.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Identity is the verified caller behind a token.
type Identity struct {
	UserID kernel.UUID
	Role   Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

type claims struct {
	jwt.RegisteredClaims
	Role Role `json:"role,omitempty"`
}

// TokenVerifier checks signatures and expiry of bearer tokens.
type TokenVerifier struct {
	key    []byte
	issuer string
	now    func() time.Time
}

func NewTokenVerifier(secret, issuer string) (*TokenVerifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errs.NewValueIsRequiredError("jwt secret")
	}
	return &TokenVerifier{
		key:    []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}, nil
}

// Verify returns the identity of a valid token. Any failure matches errs.ErrAuthFailed.
func (v *TokenVerifier) Verify(token string) (Identity, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return Identity{}, fmt.Errorf("%w: missing token", errs.ErrAuthFailed)
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	}
	if v.issuer != "" {
		options = append(options, jwt.WithIssuer(v.issuer))
	}

	var c claims
	if _, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return v.key, nil
	}, options...); err != nil {
		return Identity{}, fmt.Errorf("%w: %w", errs.ErrAuthFailed, err)
	}

	userID, err := kernel.UUIDFromString(c.Subject)
	if err == nil {
		err = userID.Validate()
	}
	if err != nil {
		return Identity{}, fmt.Errorf("%w: subject: %w", errs.ErrAuthFailed, err)
	}

	role := c.Role
	switch role {
	case "":
		role = RoleCustomer
	case RoleCustomer, RoleAdmin:
	default:
		return Identity{}, fmt.Errorf("%w: unknown role %q", errs.ErrAuthFailed, role)
	}

	return Identity{UserID: userID, Role: role}, nil
}

// Issue signs a token for identity valid for ttl. Used by tooling and tests; production tokens
// come from the identity service sharing the same secret.
func (v *TokenVerifier) Issue(identity Identity, ttl time.Duration) (string, error) {
	if err := identity.UserID.Validate(); err != nil {
		return "", err
	}
	if ttl <= 0 {
		return "", errors.New("token ttl must be positive")
	}

	now := v.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    v.issuer,
			Subject:   identity.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: identity.Role,
	})
	return token.SignedString(v.key)
}
