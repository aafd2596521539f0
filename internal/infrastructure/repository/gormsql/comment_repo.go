package gormsql

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mikiasgoitom/articleboard/internal/domain/contract"
	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
)

type CommentRepository struct {
	db *gorm.DB
}

var _ contract.ICommentRepository = (*CommentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func bumpCommentCount(tx *gorm.DB, articleID uint64, delta int) error {
	res := tx.Model(&ArticleModel{}).
		Where("id = ?", articleID).
		UpdateColumn("comment_count", gorm.Expr("comment_count + ?", delta))
	if res.Error != nil {
		return translate(res.Error, "update comment count")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, fmt.Sprintf("article %d", articleID))
	}
	return nil
}

func (r *CommentRepository) CreateComment(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := &CommentModel{
			ArticleID: comment.ArticleID,
			AuthorID:  comment.AuthorID,
			Text:      comment.Text,
			CreatedAt: comment.CreatedAt,
			UpdatedAt: comment.UpdatedAt,
		}
		if err := tx.Create(m).Error; err != nil {
			return translate(err, "create comment")
		}
		if err := bumpCommentCount(tx, comment.ArticleID, 1); err != nil {
			return err
		}
		comment.ID = m.ID
		return nil
	})
}

func (r *CommentRepository) GetCommentByID(ctx context.Context, id uint64) (*entity.Comment, error) {
	var m CommentModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("get comment %d", id))
	}
	return toCommentEntity(&m), nil
}

func (r *CommentRepository) ListCommentsByArticle(ctx context.Context, articleID uint64) ([]*entity.Comment, error) {
	var models []CommentModel
	err := r.db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("created_at ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, translate(err, "list comments")
	}
	comments := make([]*entity.Comment, 0, len(models))
	for i := range models {
		comments = append(comments, toCommentEntity(&models[i]))
	}
	return comments, nil
}

func (r *CommentRepository) DeleteComment(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m CommentModel
		if err := tx.Where("id = ?", id).Take(&m).Error; err != nil {
			return translate(err, fmt.Sprintf("get comment %d", id))
		}
		if err := tx.Where("comment_id = ?", id).Delete(&CommentLikeModel{}).Error; err != nil {
			return translate(err, "delete comment likes")
		}
		if err := tx.Delete(&CommentModel{}, id).Error; err != nil {
			return translate(err, fmt.Sprintf("delete comment %d", id))
		}
		return bumpCommentCount(tx, m.ArticleID, -1)
	})
}
