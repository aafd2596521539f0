package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
)

// stubRedis implements the three commands the store issues; anything else panics.
type stubRedis struct {
	redis.Cmdable
	data map[string]string
	ttl  map[string]time.Duration
	err  error
}

func newStubRedis() *stubRedis {
	return &stubRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (s *stubRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	if s.err != nil {
		cmd.SetErr(s.err)
		return cmd
	}
	v, ok := s.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(v)
	return cmd
}

func (s *stubRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "set", key)
	switch v := value.(type) {
	case []byte:
		s.data[key] = string(v)
	case string:
		s.data[key] = v
	}
	s.ttl[key] = expiration
	cmd.SetVal("OK")
	return cmd
}

func (s *stubRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "del")
	var n int64
	for _, k := range keys {
		if _, ok := s.data[k]; ok {
			delete(s.data, k)
			n++
		}
	}
	cmd.SetVal(n)
	return cmd
}

func TestArticleCacheStore_RoundTrip(t *testing.T) {
	rdb := newStubRedis()
	c := NewArticleCacheStore(rdb)
	ctx := context.Background()

	_, ok, err := c.GetArticle(ctx, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SetArticle(ctx, &entity.Article{ID: 3, Title: "cached", Tags: []string{"go"}}))
	assert.Equal(t, defaultDetailTTL, rdb.ttl["article:3"])

	got, ok, err := c.GetArticle(ctx, 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "cached", got.Title)
	assert.Equal(t, []string{"go"}, got.Tags)

	require.NoError(t, c.InvalidateArticle(ctx, 3))
	_, ok, err = c.GetArticle(ctx, 3)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArticleCacheStore_CorruptEntryIsMiss(t *testing.T) {
	rdb := newStubRedis()
	rdb.data["article:9"] = "{not json"

	_, ok, err := NewArticleCacheStore(rdb).GetArticle(context.Background(), 9)

	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestArticleCacheStore_BackendError(t *testing.T) {
	rdb := newStubRedis()
	rdb.err = errors.New("connection refused")

	_, ok, err := NewArticleCacheStore(rdb).GetArticle(context.Background(), 1)

	assert.Error(t, err)
	assert.False(t, ok)
}
