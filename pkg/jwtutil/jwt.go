package jwtutil

import (
	"errors"
	"time"

	"distribution-service/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

var secret []byte

// UserClaims represents the JWT claims issued by the identity provider
type UserClaims struct {
	Email  string `json:"email"`
	UserID uint   `json:"user_id"`
	jwt.RegisteredClaims
}

// Initialize sets the HS256 signing key
func Initialize(cfg *config.JWTConfig) {
	secret = []byte(cfg.SigningKey)
}

// GenerateToken creates a signed token for a user, valid for ttl
func GenerateToken(email string, userID uint, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("jwt signing key is not initialized")
	}
	now := time.Now()
	claims := UserClaims{
		Email:  email,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*UserClaims, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwt signing key is not initialized")
	}
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
