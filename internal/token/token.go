// Package token issues and verifies the signed tokens handed out at login.
package token

import (
	"fmt"
	"time"

	"github.com/bedirhan/todo-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Service signs HS256 tokens carrying {subject=email, role} plus the
// standard issued-at and expiry claims.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed token for the given identity.
func (s *Service) Issue(email, role string) (string, error) {
	now := time.Now()
	claims := &models.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	//create the token using hs256 algo, sign with the secret key and return
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse verifies the signature and expiry and returns the claims.
func (s *Service) Parse(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
