package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService mints and validates the signed bearer credential. The token
// binds only the user id; roles are resolved fresh at the boundary so a stale
// snapshot can never be served out of a long-lived token.
type TokenService struct {
	secret []byte
	expiry time.Duration
	clock  Clock
}

func NewTokenService(secret string, expiry time.Duration, clock Clock) *TokenService {
	return &TokenService{secret: []byte(secret), expiry: expiry, clock: clock}
}

// Issue creates a signed HS256 token with the user id as subject.
func (s *TokenService) Issue(userID uuid.UUID) (string, error) {
	now := s.clock.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(s.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Parse validates the signature and expiry and returns the subject user id.
func (s *TokenService) Parse(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("reading subject claim: %w", err)
	}
	return uuid.Parse(sub)
}
