package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID       string `json:"uid"`
	IsFreelancer bool   `json:"frl"`
	jwt.RegisteredClaims
}

func SignJWT(secret string, userID string, isFreelancer bool, expiresMin int) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:       userID,
		IsFreelancer: isFreelancer,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expiresMin) * time.Minute)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}
