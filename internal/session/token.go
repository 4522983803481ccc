package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/workly/workly/internal/model"
)

// TokenInfo is the information carried by a bearer token.
type TokenInfo struct {
	Subject   string
	Email     string
	ExpiresAt *time.Time
}

// Expired returns true when the token has an expiration and it's before now.
func (t TokenInfo) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && now.After(*t.ExpiresAt)
}

// Inspect decodes the claims of a JWT bearer token without verifying its signature.
// The server is the one verifying tokens, the client only reads them for diagnostics.
func Inspect(token string) (*TokenInfo, error) {
	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return nil, fmt.Errorf("could not parse token: %w: %w", err, model.ErrNotValid)
	}

	info := &TokenInfo{}
	if sub, ok := claims["sub"].(string); ok {
		info.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		info.Email = email
	}
	if exp, ok := claims["exp"].(float64); ok {
		t := time.Unix(int64(exp), 0).UTC()
		info.ExpiresAt = &t
	}

	return info, nil
}
