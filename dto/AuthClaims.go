package dto

import (
	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims is encoded inside the access token
type AuthClaims struct {
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
	jwt.RegisteredClaims
}
