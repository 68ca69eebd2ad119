package util

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"umkmotion-otp/dto"
)

const accessTokenTTL = 15 * time.Minute

// AccessTokenTTLSeconds is exposed for the login response payload
const AccessTokenTTLSeconds = int(accessTokenTTL / time.Second)

// GenerateAccessToken signs a short-lived HS256 token for a verified user
func GenerateAccessToken(secret string, userID uuid.UUID, email string) (string, error) {
	now := time.Now()

	claims := dto.AuthClaims{
		Email:    email,
		Verified: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "umkmotion-otp",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAccessToken validates the signature and expiry and returns the claims
func ParseAccessToken(secret, tokenString string) (*dto.AuthClaims, error) {
	claims := &dto.AuthClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}
