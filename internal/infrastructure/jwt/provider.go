package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failure kinds. The provider collapses jwt/v5's error surface
// into these three so callers can log the cause without parsing library
// errors. None of them is ever shown to a client.
var (
	ErrMalformed    = errors.New("token malformed")
	ErrBadSignature = errors.New("token signature invalid")
	ErrExpired      = errors.New("token expired")
)

// Provider signs and verifies HS256 session tokens. The signing secret is
// fixed at construction and shared by every token the process issues;
// verification is a pure function of the token bytes, the secret and the
// clock, so the Provider is safe for concurrent use without locking.
type Provider struct {
	secret []byte
	expiry time.Duration
}

// NewProvider creates a Provider. The secret must be non-empty; there is no
// ambient fallback, tests pass a fixed key.
func NewProvider(secret string, expiry time.Duration) (*Provider, error) {
	if secret == "" {
		return nil, errors.New("auth secret key is empty")
	}
	return &Provider{secret: []byte(secret), expiry: expiry}, nil
}

// Sign mints a token asserting subject until now + expiry.
func (p *Provider) Sign(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(p.expiry)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// Verify parses and validates tokenStr and returns the subject it asserts.
// Signature comparison inside jwt/v5 is constant-time (HMAC compare).
// Failures map to ErrMalformed, ErrBadSignature or ErrExpired.
func (p *Provider) Verify(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrBadSignature
		default:
			return "", ErrMalformed
		}
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrMalformed
	}
	return claims.Subject, nil
}
