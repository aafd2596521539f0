package usecase

import (
	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
)

// JWTService defines the interface for JWT operations.
type JWTService interface {
	GenerateAccessToken(userID uint64) (string, error)
	// GenerateRefreshToken returns the signed token and its unique id (jti).
	GenerateRefreshToken(userID uint64) (string, string, error)
	ParseAccessToken(token string) (*entity.Claims, error)
	ParseRefreshToken(token string) (*entity.Claims, error)
}
