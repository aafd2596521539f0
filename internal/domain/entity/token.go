package entity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token is a stored refresh token. Only the hash of the token is persisted.
type Token struct {
	ID        string    `json:"id"`
	UserID    uint64    `json:"user_id"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	Revoked   bool      `json:"revoked"`
}

// Claims carries the authenticated identity extracted from a JWT.
type Claims struct {
	UserID  uint64 `json:"uid"`
	TokenID string `json:"-"`
	jwt.RegisteredClaims
}
