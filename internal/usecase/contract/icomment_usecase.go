package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
)

type ICommentUseCase interface {
	CreateComment(ctx context.Context, articleID, authorID uint64, text string) (*entity.Comment, error)
	GetArticleComments(ctx context.Context, articleID uint64) ([]*entity.Comment, error)
	DeleteComment(ctx context.Context, commentID, authorID uint64) error
}
