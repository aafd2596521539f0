package contract

import (
	"context"
	"time"

	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
)

type ITokenRepository interface {
	CreateToken(ctx context.Context, token *entity.Token) error
	GetTokenByID(ctx context.Context, id string) (*entity.Token, error)
	// RotateToken replaces the stored token row id with newToken.
	RotateToken(ctx context.Context, id string, newToken *entity.Token) error
	RevokeToken(ctx context.Context, id string) error
	RevokeAllTokensForUser(ctx context.Context, userID uint64) error
}

// TokenTTL bundles token lifetimes read from configuration.
type TokenTTL struct {
	Access  time.Duration
	Refresh time.Duration
}
