package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wilideparisdenode/bloggerBackend/internal/apperr"
)

// TokenTTL is the session credential lifetime
const TokenTTL = 7 * 24 * time.Hour

// TokenSigner signs and verifies session credentials
type TokenSigner interface {
	Sign(userID string) (string, error)
	Verify(token string) (string, error)
}

// jwtSigner issues HS256 JWTs carrying the user ID as subject
type jwtSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenSigner creates a JWT signer with the given secret
func NewTokenSigner(secret []byte) TokenSigner {
	return &jwtSigner{secret: secret, ttl: TokenTTL}
}

// Sign issues a credential for the given user
func (s *jwtSigner) Sign(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a credential, returning the user ID it carries
func (s *jwtSigner) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		})
	if err != nil {
		return "", apperr.Unauthenticated("invalid or expired token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", apperr.Unauthenticated("invalid token")
	}
	return claims.Subject, nil
}
