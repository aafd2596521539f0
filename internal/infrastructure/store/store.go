package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mikiasgoitom/articleboard/internal/domain/contract"
	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
)

const defaultDetailTTL = 30 * time.Minute

// ArticleCacheStore keeps serialized article details in redis.
type ArticleCacheStore struct {
	rdb       redis.Cmdable
	detailTTL time.Duration
}

var _ contract.IArticleCache = (*ArticleCacheStore)(nil)

func NewArticleCacheStore(rdb redis.Cmdable) *ArticleCacheStore {
	return &ArticleCacheStore{
		rdb:       rdb,
		detailTTL: defaultDetailTTL,
	}
}

func articleDetailKey(id uint64) string { return fmt.Sprintf("article:%d", id) }

// GetArticle returns (nil, false, nil) on a miss. An undecodable entry counts as a miss.
func (c *ArticleCacheStore) GetArticle(ctx context.Context, id uint64) (*entity.Article, bool, error) {
	b, err := c.rdb.Get(ctx, articleDetailKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var article entity.Article
	if err := json.Unmarshal(b, &article); err != nil {
		return nil, false, nil
	}
	return &article, true, nil
}

func (c *ArticleCacheStore) SetArticle(ctx context.Context, article *entity.Article) error {
	data, err := json.Marshal(article)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, articleDetailKey(article.ID), data, c.detailTTL).Err()
}

func (c *ArticleCacheStore) InvalidateArticle(ctx context.Context, id uint64) error {
	return c.rdb.Del(ctx, articleDetailKey(id)).Err()
}
