package contract

import (
	"context"

	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
)

// IReactionStore is the set of operations available inside one reaction unit of work.
// Implementations must hold a lock on the likeable row from FindLikeable until the
// unit of work ends.
type IReactionStore interface {
	// FindLikeable loads and locks the entity; returns entity.ErrNotFound if it does not exist.
	FindLikeable(ctx context.Context, kind entity.LikeableKind, id uint64) (*entity.Likeable, error)
	HasLiker(ctx context.Context, kind entity.LikeableKind, id, userID uint64) (bool, error)
	AddLiker(ctx context.Context, kind entity.LikeableKind, id, userID uint64) error
	RemoveLiker(ctx context.Context, kind entity.LikeableKind, id, userID uint64) error
	SaveLikeCount(ctx context.Context, likeable *entity.Likeable) error
}

// IReactionRepository persists like-sets for articles and comments.
type IReactionRepository interface {
	// WithinTx runs fn in a single transaction. Any error from fn rolls everything back.
	WithinTx(ctx context.Context, fn func(store IReactionStore) error) error
	ListLikers(ctx context.Context, kind entity.LikeableKind, id uint64) ([]uint64, error)
	IsLikedBy(ctx context.Context, kind entity.LikeableKind, id, userID uint64) (bool, error)
}

// IReactionEventPublisher announces committed toggles to other services.
type IReactionEventPublisher interface {
	PublishReaction(ctx context.Context, event entity.ReactionEvent) error
}
