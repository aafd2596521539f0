package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
)

type IReactionUseCase interface {
	// Toggle flips userID's membership in the entity's like-set and returns the new like count.
	Toggle(ctx context.Context, kind entity.LikeableKind, entityID, userID uint64) (int64, error)
	Likers(ctx context.Context, kind entity.LikeableKind, entityID uint64) ([]uint64, error)
	HasLiked(ctx context.Context, kind entity.LikeableKind, entityID, userID uint64) (bool, error)
}
