package jwthelper

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenLifespan = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

type UserClaims struct {
	jwt.RegisteredClaims

	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	UserAgent string `json:"user_agent"`
}

func GenerateToken(signingKey []byte, userID uint, email, role, userAgent string) (string, error) {
	now := time.Now()
	claims := UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifespan)),
		},
		UserID:    userID,
		Email:     email,
		Role:      role,
		UserAgent: userAgent,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(signingKey)
	if err != nil {
		return "", fmt.Errorf("token.SignedString -> %w", err)
	}

	return signed, nil
}

func ParseToken(signingKey []byte, tokenString string) (*UserClaims, error) {
	claims := &UserClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return signingKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("jwt.ParseWithClaims -> %w", err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
