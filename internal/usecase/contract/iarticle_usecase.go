package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/articleboard/internal/domain/contract"
	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
)

// ArticleDetail is an article together with its comments and like-set.
type ArticleDetail struct {
	Article  *entity.Article
	Comments []*entity.Comment
	Likers   []uint64
}

type IArticleUseCase interface {
	CreateArticle(ctx context.Context, authorID uint64, title, content string, tags []string) (*entity.Article, error)
	GetArticles(ctx context.Context, page, pageSize int) ([]*entity.Article, contract.PaginationMeta, error)
	GetArticleDetail(ctx context.Context, articleID uint64) (*ArticleDetail, error)
	UpdateArticle(ctx context.Context, articleID, authorID uint64, title, content *string, tags []string) (*entity.Article, error)
	DeleteArticle(ctx context.Context, articleID, authorID uint64) error
}
