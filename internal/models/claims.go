package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: the subject carries the email.
type Claims struct {
	Role string `json:"role"`
	//has standard jwt fields issued at, expires at etc
	jwt.RegisteredClaims
}
