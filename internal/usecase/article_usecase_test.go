package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
	"github.com/mikiasgoitom/articleboard/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type articleFixture struct {
	articles  *memArticleRepo
	comments  *memCommentRepo
	reactions *memReactionRepo
	cache     *fakeArticleCache
	uc        *usecase.ArticleUsecase
}

func newArticleFixture(withCache bool) *articleFixture {
	f := &articleFixture{
		articles:  newMemArticleRepo(),
		reactions: newMemReactionRepo(),
	}
	f.comments = &memCommentRepo{articles: f.articles}
	f.uc = usecase.NewArticleUsecase(f.articles, f.comments, f.reactions, firstWordsPreviewer{}, nopLogger{})
	if withCache {
		f.cache = newFakeArticleCache()
		f.uc.SetArticleCache(f.cache)
	}
	return f
}

func TestCreateArticle_NormalizesTagsAndBuildsPreview(t *testing.T) {
	f := newArticleFixture(false)

	article, err := f.uc.CreateArticle(context.Background(), 7, "  Hello  ", "one two three four five", []string{"Go", " go", "", "web"})

	require.NoError(t, err)
	assert.NotZero(t, article.ID)
	assert.Equal(t, "Hello", article.Title)
	assert.Equal(t, "one two three", article.Preview)
	assert.Equal(t, []string{"go", "web"}, article.Tags)
	assert.Equal(t, uint64(7), article.AuthorID)
	assert.Zero(t, article.LikeCount)
}

func TestCreateArticle_Validation(t *testing.T) {
	f := newArticleFixture(false)
	ctx := context.Background()

	_, err := f.uc.CreateArticle(ctx, 7, "", "body", nil)
	assert.ErrorIs(t, err, entity.ErrInvalidRequest)

	_, err = f.uc.CreateArticle(ctx, 7, "title", "   ", nil)
	assert.ErrorIs(t, err, entity.ErrInvalidRequest)

	_, err = f.uc.CreateArticle(ctx, 0, "title", "body", nil)
	assert.ErrorIs(t, err, entity.ErrUnauthorized)
}

func TestGetArticles_ClampsPaging(t *testing.T) {
	f := newArticleFixture(false)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.uc.CreateArticle(ctx, 1, "t", "c", nil)
		require.NoError(t, err)
	}

	articles, meta, err := f.uc.GetArticles(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, articles, 3)
	assert.Equal(t, 1, meta.CurrentPage)
	assert.Equal(t, 10, meta.PageSize)
	assert.Equal(t, int64(3), meta.TotalItems)
	assert.Equal(t, uint64(3), articles[0].ID, "newest first")

	_, meta, err = f.uc.GetArticles(ctx, 1, 1000)
	require.NoError(t, err)
	assert.Equal(t, 100, meta.PageSize)
}

func TestGetArticleDetail_IncludesCommentsAndLikers(t *testing.T) {
	f := newArticleFixture(false)
	ctx := context.Background()
	article, err := f.uc.CreateArticle(ctx, 1, "t", "c", nil)
	require.NoError(t, err)
	require.NoError(t, f.comments.CreateComment(ctx, &entity.Comment{ArticleID: article.ID, AuthorID: 2, Text: "hi"}))
	f.reactions.seed(entity.LikeableArticle, article.ID, 4, 5)

	detail, err := f.uc.GetArticleDetail(ctx, article.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.Article.CommentCount)
	assert.Len(t, detail.Comments, 1)
	assert.Equal(t, []uint64{4, 5}, detail.Likers)
}

func TestGetArticleDetail_NotFound(t *testing.T) {
	f := newArticleFixture(true)

	_, err := f.uc.GetArticleDetail(context.Background(), 404)

	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestGetArticleDetail_CacheHitOverlaysCounters(t *testing.T) {
	f := newArticleFixture(true)
	ctx := context.Background()
	article, err := f.uc.CreateArticle(ctx, 1, "t", "c", nil)
	require.NoError(t, err)

	_, err = f.uc.GetArticleDetail(ctx, article.ID)
	require.NoError(t, err)
	callsAfterMiss := f.articles.getCalls

	// like_count changes behind the cache's back
	f.articles.mu.Lock()
	f.articles.articles[article.ID].LikeCount = 9
	f.articles.mu.Unlock()

	detail, err := f.uc.GetArticleDetail(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, callsAfterMiss, f.articles.getCalls, "second read should be served from cache")
	assert.Equal(t, int64(9), detail.Article.LikeCount)
}

func TestUpdateArticle(t *testing.T) {
	f := newArticleFixture(true)
	ctx := context.Background()
	article, err := f.uc.CreateArticle(ctx, 1, "old", "old body", []string{"a"})
	require.NoError(t, err)

	title := "new"
	content := "brand new body text here"
	updated, err := f.uc.UpdateArticle(ctx, article.ID, 1, &title, &content, []string{"B"})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, "brand new body", updated.Preview)
	assert.Equal(t, []string{"b"}, updated.Tags)
	assert.Contains(t, f.cache.invalidated, article.ID)

	kept, err := f.uc.UpdateArticle(ctx, article.ID, 1, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, kept.Tags, "nil tags leave the set untouched")

	_, err = f.uc.UpdateArticle(ctx, article.ID, 2, &title, nil, nil)
	assert.ErrorIs(t, err, entity.ErrForbidden)

	empty := ""
	_, err = f.uc.UpdateArticle(ctx, article.ID, 1, &empty, nil, nil)
	assert.ErrorIs(t, err, entity.ErrInvalidRequest)

	_, err = f.uc.UpdateArticle(ctx, 999, 1, &title, nil, nil)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestDeleteArticle(t *testing.T) {
	f := newArticleFixture(true)
	ctx := context.Background()
	article, err := f.uc.CreateArticle(ctx, 1, "t", "c", nil)
	require.NoError(t, err)

	err = f.uc.DeleteArticle(ctx, article.ID, 2)
	assert.ErrorIs(t, err, entity.ErrForbidden)

	require.NoError(t, f.uc.DeleteArticle(ctx, article.ID, 1))
	assert.Contains(t, f.cache.invalidated, article.ID)

	_, err = f.uc.GetArticleDetail(ctx, article.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCreateArticle_StoreFailurePropagates(t *testing.T) {
	f := newArticleFixture(false)
	boom := errors.New("connection reset")
	f.articles.failWrite = boom

	_, err := f.uc.CreateArticle(context.Background(), 1, "t", "c", nil)

	assert.ErrorIs(t, err, boom)
}
