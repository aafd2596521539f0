package contract

import (
	"context"

	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
)

// IArticleRepository provides methods for managing article data in the database.
type IArticleRepository interface {
	CreateArticle(ctx context.Context, article *entity.Article) error
	GetArticleByID(ctx context.Context, id uint64) (*entity.Article, error)
	// GetArticleCounters reads only the denormalized counters, bypassing any cache.
	GetArticleCounters(ctx context.Context, id uint64) (likeCount, commentCount int64, err error)
	ListArticles(ctx context.Context, pagination Pagination) ([]*entity.Article, int64, error)
	ListArticlesByAuthor(ctx context.Context, authorID uint64, pagination Pagination) ([]*entity.Article, int64, error)
	// UpdateArticle writes title, content, preview and replaces the tag set.
	UpdateArticle(ctx context.Context, article *entity.Article) error
	DeleteArticle(ctx context.Context, id uint64) error
}
