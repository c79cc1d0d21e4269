package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type jwtCustomClaims struct {
	Email  string `json:"email"`
	UserID uint   `json:"id"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT binding the user's email and ID.
func GenerateToken(secret, email string, userID uint, ttl time.Duration) (string, error) {
	claims := &jwtCustomClaims{
		Email:  email,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates the token and returns the embedded email and user ID.
func ParseToken(secret, tokenString string) (string, uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", 0, err
	}

	if claims, ok := token.Claims.(*jwtCustomClaims); ok && token.Valid {
		return claims.Email, claims.UserID, nil
	}

	return "", 0, jwt.ErrTokenInvalidClaims
}
