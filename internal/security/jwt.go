// Package security signs and verifies admin tokens and hashes passwords.
package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token validation errors.
var (
	// ErrInvalidToken indicates a token is malformed or fails validation.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken indicates a token has expired.
	ErrExpiredToken = errors.New("token expired")
)

// AdminClaims are the claims carried by an admin token.
type AdminClaims struct {
	AdminID  uint   `json:"admin_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateAdminToken signs an HS256 admin token valid for ttl.
func GenerateAdminToken(secret string, adminID uint, username string, ttl time.Duration) (string, error) {
	return generateAdminToken(secret, adminID, username, time.Now().UTC(), ttl)
}

func generateAdminToken(secret string, adminID uint, username string, now time.Time, ttl time.Duration) (string, error) {
	claims := AdminClaims{
		AdminID:  adminID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAdminToken validates an admin token and returns its claims.
func ParseAdminToken(secret, tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid || claims.AdminID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
