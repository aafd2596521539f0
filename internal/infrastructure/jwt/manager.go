package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer           = "articleboard"
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var ErrWrongTokenType = errors.New("wrong token type")

// CustomClaims are the claims signed into every token.
type CustomClaims struct {
	UserID    uint64 `json:"uid"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies HS256 tokens.
type JWTManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewJWTManager(secret string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (m *JWTManager) sign(userID uint64, tokenType, tokenID string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := &CustomClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Issuer:    issuer,
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// GenerateAccessToken issues a short-lived access token.
func (m *JWTManager) GenerateAccessToken(userID uint64) (string, error) {
	return m.sign(userID, tokenTypeAccess, "", m.accessTTL)
}

// GenerateRefreshToken issues a refresh token whose jti is tokenID.
func (m *JWTManager) GenerateRefreshToken(tokenID string, userID uint64) (string, error) {
	return m.sign(userID, tokenTypeRefresh, tokenID, m.refreshTTL)
}

func (m *JWTManager) parse(tokenStr, wantType string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.TokenType != wantType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

// VerifyToken validates an access token.
func (m *JWTManager) VerifyToken(tokenStr string) (*CustomClaims, error) {
	return m.parse(tokenStr, tokenTypeAccess)
}

// VerifyRefreshToken validates a refresh token.
func (m *JWTManager) VerifyRefreshToken(tokenStr string) (*CustomClaims, error) {
	return m.parse(tokenStr, tokenTypeRefresh)
}
