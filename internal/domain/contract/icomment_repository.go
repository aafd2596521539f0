package contract

import (
	"context"

	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
)

type ICommentRepository interface {
	// CreateComment inserts the comment and bumps the article's comment_count atomically.
	CreateComment(ctx context.Context, comment *entity.Comment) error
	GetCommentByID(ctx context.Context, id uint64) (*entity.Comment, error)
	ListCommentsByArticle(ctx context.Context, articleID uint64) ([]*entity.Comment, error)
	// DeleteComment removes the comment, its likes and decrements comment_count atomically.
	DeleteComment(ctx context.Context, id uint64) error
}
