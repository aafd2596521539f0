package jwt

import (
	"github.com/mikiasgoitom/articleboard/internal/domain/contract"
	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
	"github.com/mikiasgoitom/articleboard/internal/usecase"
)

// JWTServiceAdapter adapts JWTManager to the usecase.JWTService interface.
type JWTServiceAdapter struct {
	mgr   *JWTManager
	uuids contract.IUUIDGenerator
}

// NewJWTService creates a new usecase.JWTService from JWTManager
func NewJWTService(mgr *JWTManager, uuids contract.IUUIDGenerator) usecase.JWTService {
	return &JWTServiceAdapter{mgr: mgr, uuids: uuids}
}

// GenerateAccessToken issues an access token for a user.
func (a *JWTServiceAdapter) GenerateAccessToken(userID uint64) (string, error) {
	return a.mgr.GenerateAccessToken(userID)
}

// GenerateRefreshToken issues a refresh token with a fresh jti.
func (a *JWTServiceAdapter) GenerateRefreshToken(userID uint64) (string, string, error) {
	tokenID := a.uuids.NewUUID()
	token, err := a.mgr.GenerateRefreshToken(tokenID, userID)
	if err != nil {
		return "", "", err
	}
	return token, tokenID, nil
}

// ParseAccessToken validates an access token and returns Claims.
func (a *JWTServiceAdapter) ParseAccessToken(tokenStr string) (*entity.Claims, error) {
	customClaims, err := a.mgr.VerifyToken(tokenStr)
	if err != nil {
		return nil, err
	}
	return &entity.Claims{
		UserID:           customClaims.UserID,
		RegisteredClaims: customClaims.RegisteredClaims,
	}, nil
}

// ParseRefreshToken validates a refresh token and returns Claims.
func (a *JWTServiceAdapter) ParseRefreshToken(tokenStr string) (*entity.Claims, error) {
	customClaims, err := a.mgr.VerifyRefreshToken(tokenStr)
	if err != nil {
		return nil, err
	}
	return &entity.Claims{
		UserID:           customClaims.UserID,
		TokenID:          customClaims.ID,
		RegisteredClaims: customClaims.RegisteredClaims,
	}, nil
}
