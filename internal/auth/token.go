// Package auth issues and checks the signed tokens carried in the "token"
// request header, and provides the middleware gating user and admin routes.
package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/Sanushoffl/thelivostore/internal/apperr"
)

const (
	ScopeUser  = "user"
	ScopeAdmin = "admin"
)

type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// TokenManager signs and parses API tokens with a single shared secret.
// Construct one at startup and inject it; there is no package-level state.
type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// IssueUser creates a user-scoped token bound to the given user id.
func (m *TokenManager) IssueUser(userID string) (string, error) {
	return m.issue(&Claims{
		Scope: ScopeUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: userID,
		},
	})
}

// IssueAdmin creates an admin-scoped token. Admin identity lives in config,
// not in the user collection, so the subject is the configured admin email.
func (m *TokenManager) IssueAdmin(email string) (string, error) {
	return m.issue(&Claims{
		Scope: ScopeAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: email,
		},
	})
}

func (m *TokenManager) issue(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse validates the signature and returns the claims.
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, apperr.Wrap(apperr.Auth, "invalid token", err)
	}
	return claims, nil
}
