package gormsql

import (
	"context"

	"gorm.io/gorm"

	"github.com/mikiasgoitom/articleboard/internal/domain/contract"
	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
)

// TokenRepository stores hashed refresh tokens.
type TokenRepository struct {
	db *gorm.DB
}

var _ contract.ITokenRepository = (*TokenRepository)(nil)

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func fromTokenEntity(t *entity.Token) *RefreshTokenModel {
	return &RefreshTokenModel{
		ID:        t.ID,
		UserID:    t.UserID,
		TokenHash: t.TokenHash,
		ExpiresAt: t.ExpiresAt,
		CreatedAt: t.CreatedAt,
		Revoked:   t.Revoked,
	}
}

func (r *TokenRepository) CreateToken(ctx context.Context, token *entity.Token) error {
	return translate(r.db.WithContext(ctx).Create(fromTokenEntity(token)).Error, "create token")
}

func (r *TokenRepository) GetTokenByID(ctx context.Context, id string) (*entity.Token, error) {
	var m RefreshTokenModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		return nil, translate(err, "get token")
	}
	return toTokenEntity(&m), nil
}

// RotateToken revokes id and stores newToken. Losing a race against another rotation
// of the same token yields ErrNotFound.
func (r *TokenRepository) RotateToken(ctx context.Context, id string, newToken *entity.Token) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&RefreshTokenModel{}).
			Where("id = ? AND revoked = ?", id, false).
			Update("revoked", true)
		if res.Error != nil {
			return translate(res.Error, "revoke token")
		}
		if res.RowsAffected == 0 {
			return translate(gorm.ErrRecordNotFound, "rotate token")
		}
		return translate(tx.Create(fromTokenEntity(newToken)).Error, "create token")
	})
}

func (r *TokenRepository) RevokeToken(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&RefreshTokenModel{}).Where("id = ?", id).Update("revoked", true)
	if res.Error != nil {
		return translate(res.Error, "revoke token")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "revoke token")
	}
	return nil
}

func (r *TokenRepository) RevokeAllTokensForUser(ctx context.Context, userID uint64) error {
	err := r.db.WithContext(ctx).
		Model(&RefreshTokenModel{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error
	return translate(err, "revoke user tokens")
}
