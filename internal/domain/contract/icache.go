package contract

import (
	"context"

	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
)

// IArticleCache defines caching operations for article detail reads.
// Cached counters are never trusted; readers overlay them from the database.
type IArticleCache interface {
	GetArticle(ctx context.Context, id uint64) (*entity.Article, bool, error)
	SetArticle(ctx context.Context, article *entity.Article) error
	InvalidateArticle(ctx context.Context, id uint64) error
}
