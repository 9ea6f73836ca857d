package session

import (
	"errors"
	"fmt"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/domain"
)

var (
	errMissingExpiry   = errors.New("credential has no exp claim")
	errMissingIdentity = errors.New("credential has no user claim")
)

// Claims is the payload the API embeds in issued credentials.
type Claims struct {
	User *domain.Identity `json:"user"`
	jwt.RegisteredClaims
}

// DecodeCredential extracts claims without verifying the signature. The result
// is good for rendering decisions only; the API remains the authority.
func DecodeCredential(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decode credential: %w", err)
	}
	if claims.ExpiresAt == nil {
		return nil, errMissingExpiry
	}
	if claims.User == nil {
		return nil, errMissingIdentity
	}
	return claims, nil
}
