package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mikiasgoitom/articleboard/internal/domain/contract"
	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
	"github.com/mikiasgoitom/articleboard/internal/infrastructure/metrics"
	usecasecontract "github.com/mikiasgoitom/articleboard/internal/usecase/contract"
)

// ReactionUsecase handles the business logic for liking articles and comments.
type ReactionUsecase struct {
	reactionRepo contract.IReactionRepository
	logger       usecasecontract.IAppLogger
	articleCache contract.IArticleCache
	publisher    contract.IReactionEventPublisher
}

// NewReactionUsecase creates and returns a new ReactionUsecase instance.
func NewReactionUsecase(reactionRepo contract.IReactionRepository, logger usecasecontract.IAppLogger) *ReactionUsecase {
	return &ReactionUsecase{
		reactionRepo: reactionRepo,
		logger:       logger,
	}
}

var _ usecasecontract.IReactionUseCase = (*ReactionUsecase)(nil)

// SetArticleCache enables invalidation of cached article details after a toggle.
func (u *ReactionUsecase) SetArticleCache(cache contract.IArticleCache) {
	u.articleCache = cache
}

// SetEventPublisher enables publishing of committed toggles.
func (u *ReactionUsecase) SetEventPublisher(publisher contract.IReactionEventPublisher) {
	u.publisher = publisher
}

// Toggle flips userID's membership in the like-set of the given entity and keeps
// like_count in step with it. Membership check, set change and counter write all
// happen in one unit of work holding the entity's row lock.
func (u *ReactionUsecase) Toggle(ctx context.Context, kind entity.LikeableKind, entityID, userID uint64) (int64, error) {
	if userID == 0 {
		return 0, entity.ErrUnauthorized
	}
	if err := validateTarget(kind, entityID); err != nil {
		return 0, err
	}

	var (
		liked bool
		count int64
	)
	start := time.Now()
	err := u.reactionRepo.WithinTx(ctx, func(store contract.IReactionStore) error {
		target, err := store.FindLikeable(ctx, kind, entityID)
		if err != nil {
			return err
		}
		exists, err := store.HasLiker(ctx, kind, entityID, userID)
		if err != nil {
			return err
		}
		if exists {
			if err := store.RemoveLiker(ctx, kind, entityID, userID); err != nil {
				return err
			}
			target.LikeCount--
		} else {
			if err := store.AddLiker(ctx, kind, entityID, userID); err != nil {
				return err
			}
			target.LikeCount++
		}
		if err := store.SaveLikeCount(ctx, target); err != nil {
			return err
		}
		liked = !exists
		count = target.LikeCount
		return nil
	})
	if err != nil {
		return 0, err
	}
	metrics.ReactionToggleDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	metrics.ReactionToggles.WithLabelValues(string(kind), metrics.Direction(liked)).Inc()

	u.afterCommit(ctx, entity.ReactionEvent{
		Kind:      kind,
		EntityID:  entityID,
		UserID:    userID,
		Liked:     liked,
		LikeCount: count,
		At:        time.Now().UTC(),
	})
	return count, nil
}

// afterCommit runs side effects that must not undo a committed toggle.
func (u *ReactionUsecase) afterCommit(ctx context.Context, event entity.ReactionEvent) {
	if event.Kind == entity.LikeableArticle && u.articleCache != nil {
		if err := u.articleCache.InvalidateArticle(ctx, event.EntityID); err != nil {
			u.logger.Warnf("failed to invalidate cached article %d: %v", event.EntityID, err)
		}
	}
	if u.publisher != nil {
		if err := u.publisher.PublishReaction(ctx, event); err != nil {
			u.logger.Warnf("failed to publish reaction event for %s %d: %v", event.Kind, event.EntityID, err)
		}
	}
}

// Likers returns the ids of users that currently like the entity.
func (u *ReactionUsecase) Likers(ctx context.Context, kind entity.LikeableKind, entityID uint64) ([]uint64, error) {
	if err := validateTarget(kind, entityID); err != nil {
		return nil, err
	}
	likers, err := u.reactionRepo.ListLikers(ctx, kind, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list likers of %s %d: %w", kind, entityID, err)
	}
	return likers, nil
}

// HasLiked reports whether userID is in the entity's like-set.
func (u *ReactionUsecase) HasLiked(ctx context.Context, kind entity.LikeableKind, entityID, userID uint64) (bool, error) {
	if err := validateTarget(kind, entityID); err != nil {
		return false, err
	}
	if userID == 0 {
		return false, nil
	}
	return u.reactionRepo.IsLikedBy(ctx, kind, entityID, userID)
}

func validateTarget(kind entity.LikeableKind, entityID uint64) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: unknown likeable kind %q", entity.ErrInvalidRequest, kind)
	}
	if entityID == 0 {
		return fmt.Errorf("%w: %s id must be positive", entity.ErrInvalidRequest, kind)
	}
	return nil
}
