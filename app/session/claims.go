package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is a part of the access token payload that is worth showing to the user.
// The manager never relies on it: the token is treated as an opaque string.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ParseClaims decodes the token payload without verifying the signature.
func ParseClaims(token string) (Claims, error) {
	var rc jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &rc); err != nil {
		return Claims{}, fmt.Errorf("parse token: %w", err)
	}

	var res Claims
	res.Subject = rc.Subject
	if rc.IssuedAt != nil {
		res.IssuedAt = rc.IssuedAt.Time
	}
	if rc.ExpiresAt != nil {
		res.ExpiresAt = rc.ExpiresAt.Time
	}
	return res, nil
}

// Expired reports whether the token has expired at the given moment.
// Tokens without expiration never expire.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
