package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/articleboard/internal/usecase/contract"
)

type likeTarget struct {
	kind entity.LikeableKind
	id   uint64
}

// MockReactionUsecase keeps like-sets in memory for handler tests.
type MockReactionUsecase struct {
	ShouldFailToggle bool

	mu     sync.Mutex
	likers map[likeTarget]map[uint64]bool
	Calls  int
}

var _ usecasecontract.IReactionUseCase = (*MockReactionUsecase)(nil)

func NewMockReactionUsecase() *MockReactionUsecase {
	return &MockReactionUsecase{likers: map[likeTarget]map[uint64]bool{}}
}

// Seed registers an entity so toggles on it succeed.
func (m *MockReactionUsecase) Seed(kind entity.LikeableKind, id uint64, users ...uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := map[uint64]bool{}
	for _, u := range users {
		set[u] = true
	}
	m.likers[likeTarget{kind, id}] = set
}

func (m *MockReactionUsecase) Toggle(ctx context.Context, kind entity.LikeableKind, entityID, userID uint64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.ShouldFailToggle {
		return 0, errors.New("deadlock found when trying to get lock")
	}
	set, ok := m.likers[likeTarget{kind, entityID}]
	if !ok {
		return 0, entity.ErrNotFound
	}
	if set[userID] {
		delete(set, userID)
	} else {
		set[userID] = true
	}
	return int64(len(set)), nil
}

func (m *MockReactionUsecase) Likers(ctx context.Context, kind entity.LikeableKind, entityID uint64) ([]uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.likers[likeTarget{kind, entityID}]
	if !ok {
		return nil, entity.ErrNotFound
	}
	out := make([]uint64, 0, len(set))
	for u := range set {
		out = append(out, u)
	}
	return out, nil
}

func (m *MockReactionUsecase) HasLiked(ctx context.Context, kind entity.LikeableKind, entityID, userID uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.likers[likeTarget{kind, entityID}][userID], nil
}
