package gormsql

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mikiasgoitom/articleboard/internal/domain/contract"
	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
)

// likeTables describes where a kind's counter and like-set live.
type likeTables struct {
	entityTable string
	likeTable   string
	foreignKey  string
}

var tablesByKind = map[entity.LikeableKind]likeTables{
	entity.LikeableArticle: {entityTable: "articles", likeTable: "article_likes", foreignKey: "article_id"},
	entity.LikeableComment: {entityTable: "comments", likeTable: "comment_likes", foreignKey: "comment_id"},
}

func tablesFor(kind entity.LikeableKind) (likeTables, error) {
	t, ok := tablesByKind[kind]
	if !ok {
		return likeTables{}, fmt.Errorf("%w: unknown likeable kind %q", entity.ErrInvalidRequest, kind)
	}
	return t, nil
}

func emptyLikeRow(kind entity.LikeableKind) interface{} {
	if kind == entity.LikeableComment {
		return &CommentLikeModel{}
	}
	return &ArticleLikeModel{}
}

func newLikeRow(kind entity.LikeableKind, id, userID uint64) interface{} {
	now := time.Now()
	if kind == entity.LikeableComment {
		return &CommentLikeModel{CommentID: id, UserID: userID, CreatedAt: now}
	}
	return &ArticleLikeModel{ArticleID: id, UserID: userID, CreatedAt: now}
}

// ReactionRepository persists like-sets and their denormalized counters.
type ReactionRepository struct {
	db *gorm.DB
}

var _ contract.IReactionRepository = (*ReactionRepository)(nil)

func NewReactionRepository(db *gorm.DB) *ReactionRepository {
	return &ReactionRepository{db: db}
}

// WithinTx runs fn inside one database transaction. Rows locked by FindLikeable stay
// locked until the transaction commits or rolls back.
func (r *ReactionRepository) WithinTx(ctx context.Context, fn func(store contract.IReactionStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&reactionStore{tx: tx})
	})
}

func (r *ReactionRepository) ListLikers(ctx context.Context, kind entity.LikeableKind, id uint64) ([]uint64, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}
	likers := []uint64{}
	err = r.db.WithContext(ctx).
		Table(t.likeTable).
		Where(t.foreignKey+" = ?", id).
		Order("created_at, user_id").
		Pluck("user_id", &likers).Error
	if err != nil {
		return nil, translate(err, "list likers")
	}
	return likers, nil
}

func (r *ReactionRepository) IsLikedBy(ctx context.Context, kind entity.LikeableKind, id, userID uint64) (bool, error) {
	return countLike(r.db.WithContext(ctx), kind, id, userID)
}

func countLike(db *gorm.DB, kind entity.LikeableKind, id, userID uint64) (bool, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return false, err
	}
	var n int64
	err = db.Table(t.likeTable).
		Where(t.foreignKey+" = ? AND user_id = ?", id, userID).
		Count(&n).Error
	if err != nil {
		return false, translate(err, "check like")
	}
	return n > 0, nil
}

// reactionStore is bound to a single transaction.
type reactionStore struct {
	tx *gorm.DB
}

type likeableRow struct {
	ID        uint64
	LikeCount int64
}

// FindLikeable issues SELECT ... FOR UPDATE so concurrent toggles of the same
// entity queue behind each other.
func (s *reactionStore) FindLikeable(ctx context.Context, kind entity.LikeableKind, id uint64) (*entity.Likeable, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}
	var row likeableRow
	err = s.tx.WithContext(ctx).
		Table(t.entityTable).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id, like_count").
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, translate(err, fmt.Sprintf("find %s %d", kind, id))
	}
	return &entity.Likeable{Kind: kind, ID: row.ID, LikeCount: row.LikeCount}, nil
}

func (s *reactionStore) HasLiker(ctx context.Context, kind entity.LikeableKind, id, userID uint64) (bool, error) {
	return countLike(s.tx.WithContext(ctx), kind, id, userID)
}

func (s *reactionStore) AddLiker(ctx context.Context, kind entity.LikeableKind, id, userID uint64) error {
	if _, err := tablesFor(kind); err != nil {
		return err
	}
	err := s.tx.WithContext(ctx).Create(newLikeRow(kind, id, userID)).Error
	return translate(err, "add like")
}

func (s *reactionStore) RemoveLiker(ctx context.Context, kind entity.LikeableKind, id, userID uint64) error {
	t, err := tablesFor(kind)
	if err != nil {
		return err
	}
	res := s.tx.WithContext(ctx).
		Where(t.foreignKey+" = ? AND user_id = ?", id, userID).
		Delete(emptyLikeRow(kind))
	if res.Error != nil {
		return translate(res.Error, "remove like")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("remove like: %w", entity.ErrNotFound)
	}
	return nil
}

func (s *reactionStore) SaveLikeCount(ctx context.Context, likeable *entity.Likeable) error {
	t, err := tablesFor(likeable.Kind)
	if err != nil {
		return err
	}
	err = s.tx.WithContext(ctx).
		Table(t.entityTable).
		Where("id = ?", likeable.ID).
		Update("like_count", likeable.LikeCount).Error
	return translate(err, "save like count")
}
