package usecase_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/mikiasgoitom/articleboard/internal/domain/contract"
	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{})   {}
func (nopLogger) Infof(string, ...interface{})    {}
func (nopLogger) Warnf(string, ...interface{})    {}
func (nopLogger) Warningf(string, ...interface{}) {}
func (nopLogger) Errorf(string, ...interface{})   {}
func (nopLogger) Fatalf(string, ...interface{})   {}

type likeKey struct {
	kind entity.LikeableKind
	id   uint64
}

// memReactionRepo is an in-memory reaction store. WithinTx holds one mutex for the
// whole unit of work and restores a snapshot when fn fails.
type memReactionRepo struct {
	mu     sync.Mutex
	counts map[likeKey]int64
	likers map[likeKey]map[uint64]bool

	failSave error
	txCalls  int
}

func newMemReactionRepo() *memReactionRepo {
	return &memReactionRepo{
		counts: map[likeKey]int64{},
		likers: map[likeKey]map[uint64]bool{},
	}
}

func (r *memReactionRepo) seed(kind entity.LikeableKind, id uint64, users ...uint64) {
	k := likeKey{kind, id}
	r.counts[k] = int64(len(users))
	r.likers[k] = map[uint64]bool{}
	for _, u := range users {
		r.likers[k][u] = true
	}
}

func (r *memReactionRepo) state(kind entity.LikeableKind, id uint64) (int64, []uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := likeKey{kind, id}
	users := make([]uint64, 0, len(r.likers[k]))
	for u := range r.likers[k] {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })
	return r.counts[k], users
}

func (r *memReactionRepo) WithinTx(ctx context.Context, fn func(store contract.IReactionStore) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txCalls++

	counts := make(map[likeKey]int64, len(r.counts))
	for k, v := range r.counts {
		counts[k] = v
	}
	likers := make(map[likeKey]map[uint64]bool, len(r.likers))
	for k, set := range r.likers {
		cp := make(map[uint64]bool, len(set))
		for u := range set {
			cp[u] = true
		}
		likers[k] = cp
	}

	if err := fn(&memReactionTx{repo: r}); err != nil {
		r.counts = counts
		r.likers = likers
		return err
	}
	return nil
}

func (r *memReactionRepo) ListLikers(ctx context.Context, kind entity.LikeableKind, id uint64) ([]uint64, error) {
	_, users := r.state(kind, id)
	return users, nil
}

func (r *memReactionRepo) IsLikedBy(ctx context.Context, kind entity.LikeableKind, id, userID uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.likers[likeKey{kind, id}][userID], nil
}

type memReactionTx struct {
	repo *memReactionRepo
}

func (t *memReactionTx) FindLikeable(ctx context.Context, kind entity.LikeableKind, id uint64) (*entity.Likeable, error) {
	count, ok := t.repo.counts[likeKey{kind, id}]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &entity.Likeable{Kind: kind, ID: id, LikeCount: count}, nil
}

func (t *memReactionTx) HasLiker(ctx context.Context, kind entity.LikeableKind, id, userID uint64) (bool, error) {
	return t.repo.likers[likeKey{kind, id}][userID], nil
}

func (t *memReactionTx) AddLiker(ctx context.Context, kind entity.LikeableKind, id, userID uint64) error {
	k := likeKey{kind, id}
	if t.repo.likers[k] == nil {
		t.repo.likers[k] = map[uint64]bool{}
	}
	if t.repo.likers[k][userID] {
		return entity.ErrConflict
	}
	t.repo.likers[k][userID] = true
	return nil
}

func (t *memReactionTx) RemoveLiker(ctx context.Context, kind entity.LikeableKind, id, userID uint64) error {
	k := likeKey{kind, id}
	if !t.repo.likers[k][userID] {
		return entity.ErrNotFound
	}
	delete(t.repo.likers[k], userID)
	return nil
}

func (t *memReactionTx) SaveLikeCount(ctx context.Context, likeable *entity.Likeable) error {
	if t.repo.failSave != nil {
		return t.repo.failSave
	}
	t.repo.counts[likeKey{likeable.Kind, likeable.ID}] = likeable.LikeCount
	return nil
}

type fakeArticleCache struct {
	mu          sync.Mutex
	articles    map[uint64]entity.Article
	invalidated []uint64
	failInvalid bool
}

func newFakeArticleCache() *fakeArticleCache {
	return &fakeArticleCache{articles: map[uint64]entity.Article{}}
}

func (c *fakeArticleCache) GetArticle(ctx context.Context, id uint64) (*entity.Article, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.articles[id]
	if !ok {
		return nil, false, nil
	}
	return &a, true, nil
}

func (c *fakeArticleCache) SetArticle(ctx context.Context, article *entity.Article) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.articles[article.ID] = *article
	return nil
}

func (c *fakeArticleCache) InvalidateArticle(ctx context.Context, id uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, id)
	delete(c.articles, id)
	if c.failInvalid {
		return errors.New("redis down")
	}
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []entity.ReactionEvent
	fail   bool
}

func (p *fakePublisher) PublishReaction(ctx context.Context, event entity.ReactionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.events = append(p.events, event)
	return nil
}
