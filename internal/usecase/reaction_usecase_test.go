package usecase_test

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
	"github.com/mikiasgoitom/articleboard/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReactionUsecase(repo *memReactionRepo) *usecase.ReactionUsecase {
	return usecase.NewReactionUsecase(repo, nopLogger{})
}

func TestToggle_LikeThenUnlike(t *testing.T) {
	repo := newMemReactionRepo()
	repo.seed(entity.LikeableArticle, 1)
	uc := newReactionUsecase(repo)
	ctx := context.Background()

	count, err := uc.Toggle(ctx, entity.LikeableArticle, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	stored, likers := repo.state(entity.LikeableArticle, 1)
	assert.Equal(t, int64(1), stored)
	assert.Equal(t, []uint64{10}, likers)

	count, err = uc.Toggle(ctx, entity.LikeableArticle, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
	stored, likers = repo.state(entity.LikeableArticle, 1)
	assert.Equal(t, int64(0), stored)
	assert.Empty(t, likers)
}

func TestToggle_AddsToExistingLikers(t *testing.T) {
	repo := newMemReactionRepo()
	repo.seed(entity.LikeableArticle, 7, 1, 2, 3)
	uc := newReactionUsecase(repo)

	count, err := uc.Toggle(context.Background(), entity.LikeableArticle, 7, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
	_, likers := repo.state(entity.LikeableArticle, 7)
	assert.Equal(t, []uint64{1, 2, 3, 4}, likers)
}

func TestToggle_CommentKind(t *testing.T) {
	repo := newMemReactionRepo()
	repo.seed(entity.LikeableComment, 3, 5)
	repo.seed(entity.LikeableArticle, 3)
	uc := newReactionUsecase(repo)

	count, err := uc.Toggle(context.Background(), entity.LikeableComment, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	articleCount, _ := repo.state(entity.LikeableArticle, 3)
	assert.Equal(t, int64(0), articleCount, "comment toggle must not touch the article with the same id")
}

func TestToggle_NotFound(t *testing.T) {
	repo := newMemReactionRepo()
	repo.seed(entity.LikeableArticle, 1, 2)
	uc := newReactionUsecase(repo)

	_, err := uc.Toggle(context.Background(), entity.LikeableArticle, 99, 1)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	count, likers := repo.state(entity.LikeableArticle, 1)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, []uint64{2}, likers)
	_, likers = repo.state(entity.LikeableArticle, 99)
	assert.Empty(t, likers)
}

func TestToggle_RejectsBadInput(t *testing.T) {
	repo := newMemReactionRepo()
	repo.seed(entity.LikeableArticle, 1)
	uc := newReactionUsecase(repo)
	ctx := context.Background()

	tests := []struct {
		name    string
		kind    entity.LikeableKind
		id      uint64
		user    uint64
		wantErr error
	}{
		{name: "anonymous caller", kind: entity.LikeableArticle, id: 1, user: 0, wantErr: entity.ErrUnauthorized},
		{name: "zero id", kind: entity.LikeableArticle, id: 0, user: 1, wantErr: entity.ErrInvalidRequest},
		{name: "unknown kind", kind: entity.LikeableKind("profile"), id: 1, user: 1, wantErr: entity.ErrInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Toggle(ctx, tt.kind, tt.id, tt.user)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Equal(t, 0, repo.txCalls)
}

func TestToggle_StoreFailureRollsBack(t *testing.T) {
	repo := newMemReactionRepo()
	repo.seed(entity.LikeableArticle, 1, 2)
	saveErr := errors.New("disk full")
	repo.failSave = saveErr
	pub := &fakePublisher{}
	uc := newReactionUsecase(repo)
	uc.SetEventPublisher(pub)

	_, err := uc.Toggle(context.Background(), entity.LikeableArticle, 1, 3)
	assert.ErrorIs(t, err, saveErr)

	count, likers := repo.state(entity.LikeableArticle, 1)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, []uint64{2}, likers)
	assert.Empty(t, pub.events)
}

func TestToggle_PairIsIdentityAndCountTracksLikers(t *testing.T) {
	repo := newMemReactionRepo()
	repo.seed(entity.LikeableArticle, 1, 1, 2)
	uc := newReactionUsecase(repo)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		user := uint64(rng.Intn(6) + 1)
		before, beforeLikers := repo.state(entity.LikeableArticle, 1)

		count, err := uc.Toggle(ctx, entity.LikeableArticle, 1, user)
		require.NoError(t, err)
		after, likers := repo.state(entity.LikeableArticle, 1)
		assert.Equal(t, after, count)
		assert.Equal(t, int64(len(likers)), after)
		diff := after - before
		assert.True(t, diff == 1 || diff == -1, "count moved by %d", diff)

		if i%3 == 0 {
			_, err = uc.Toggle(ctx, entity.LikeableArticle, 1, user)
			require.NoError(t, err)
			restored, restoredLikers := repo.state(entity.LikeableArticle, 1)
			assert.Equal(t, before, restored)
			assert.Equal(t, beforeLikers, restoredLikers)
		}
	}
}

func TestToggle_ConcurrentUsersNoLostUpdate(t *testing.T) {
	repo := newMemReactionRepo()
	repo.seed(entity.LikeableArticle, 1)
	uc := newReactionUsecase(repo)

	const users = 50
	var wg sync.WaitGroup
	errs := make(chan error, users)
	for u := uint64(1); u <= users; u++ {
		wg.Add(1)
		go func(user uint64) {
			defer wg.Done()
			if _, err := uc.Toggle(context.Background(), entity.LikeableArticle, 1, user); err != nil {
				errs <- err
			}
		}(u)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("toggle failed: %v", err)
	}

	count, likers := repo.state(entity.LikeableArticle, 1)
	assert.Equal(t, int64(users), count)
	assert.Len(t, likers, users)
}

func TestToggle_AfterCommitSideEffects(t *testing.T) {
	repo := newMemReactionRepo()
	repo.seed(entity.LikeableArticle, 4)
	repo.seed(entity.LikeableComment, 9)
	cache := newFakeArticleCache()
	pub := &fakePublisher{}
	uc := newReactionUsecase(repo)
	uc.SetArticleCache(cache)
	uc.SetEventPublisher(pub)
	ctx := context.Background()

	_, err := uc.Toggle(ctx, entity.LikeableArticle, 4, 1)
	require.NoError(t, err)
	_, err = uc.Toggle(ctx, entity.LikeableComment, 9, 1)
	require.NoError(t, err)

	assert.Equal(t, []uint64{4}, cache.invalidated)
	require.Len(t, pub.events, 2)
	assert.Equal(t, entity.LikeableArticle, pub.events[0].Kind)
	assert.True(t, pub.events[0].Liked)
	assert.Equal(t, int64(1), pub.events[0].LikeCount)
	assert.Equal(t, entity.LikeableComment, pub.events[1].Kind)
}

func TestToggle_SideEffectFailuresDoNotFailToggle(t *testing.T) {
	repo := newMemReactionRepo()
	repo.seed(entity.LikeableArticle, 4)
	cache := newFakeArticleCache()
	cache.failInvalid = true
	uc := newReactionUsecase(repo)
	uc.SetArticleCache(cache)
	uc.SetEventPublisher(&fakePublisher{fail: true})

	count, err := uc.Toggle(context.Background(), entity.LikeableArticle, 4, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLikersAndHasLiked(t *testing.T) {
	repo := newMemReactionRepo()
	repo.seed(entity.LikeableComment, 2, 8, 3)
	uc := newReactionUsecase(repo)
	ctx := context.Background()

	likers, err := uc.Likers(ctx, entity.LikeableComment, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint64{3, 8}, likers)

	liked, err := uc.HasLiked(ctx, entity.LikeableComment, 2, 8)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = uc.HasLiked(ctx, entity.LikeableComment, 2, 0)
	require.NoError(t, err)
	assert.False(t, liked)

	_, err = uc.Likers(ctx, entity.LikeableKind(""), 2)
	assert.ErrorIs(t, err, entity.ErrInvalidRequest)
}
