package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikiasgoitom/articleboard/internal/domain/contract"
	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/articleboard/internal/usecase/contract"
)

// MockArticleUsecase stores articles in a map keyed by id.
type MockArticleUsecase struct {
	Articles map[uint64]*entity.Article
	nextID   uint64
}

var _ usecasecontract.IArticleUseCase = (*MockArticleUsecase)(nil)

func NewMockArticleUsecase() *MockArticleUsecase {
	return &MockArticleUsecase{Articles: map[uint64]*entity.Article{}, nextID: 1}
}

func (m *MockArticleUsecase) Add(authorID uint64, title string) *entity.Article {
	a := &entity.Article{ID: m.nextID, Title: title, Content: "content", AuthorID: authorID, CreatedAt: time.Now()}
	m.Articles[a.ID] = a
	m.nextID++
	return a
}

func (m *MockArticleUsecase) CreateArticle(ctx context.Context, authorID uint64, title, content string, tags []string) (*entity.Article, error) {
	a := m.Add(authorID, title)
	a.Content = content
	a.Tags = tags
	return a, nil
}

func (m *MockArticleUsecase) GetArticles(ctx context.Context, page, pageSize int) ([]*entity.Article, contract.PaginationMeta, error) {
	out := make([]*entity.Article, 0, len(m.Articles))
	for id := m.nextID - 1; id >= 1; id-- {
		if a, ok := m.Articles[id]; ok {
			out = append(out, a)
		}
	}
	return out, contract.NewPaginationMeta(contract.Pagination{Page: page, PageSize: pageSize}, int64(len(out))), nil
}

func (m *MockArticleUsecase) GetArticleDetail(ctx context.Context, articleID uint64) (*usecasecontract.ArticleDetail, error) {
	a, ok := m.Articles[articleID]
	if !ok {
		return nil, fmt.Errorf("article %d: %w", articleID, entity.ErrNotFound)
	}
	return &usecasecontract.ArticleDetail{Article: a}, nil
}

func (m *MockArticleUsecase) UpdateArticle(ctx context.Context, articleID, authorID uint64, title, content *string, tags []string) (*entity.Article, error) {
	a, ok := m.Articles[articleID]
	if !ok {
		return nil, fmt.Errorf("article %d: %w", articleID, entity.ErrNotFound)
	}
	if a.AuthorID != authorID {
		return nil, entity.ErrForbidden
	}
	if title != nil {
		a.Title = *title
	}
	if content != nil {
		a.Content = *content
	}
	if tags != nil {
		a.Tags = tags
	}
	return a, nil
}

func (m *MockArticleUsecase) DeleteArticle(ctx context.Context, articleID, authorID uint64) error {
	a, ok := m.Articles[articleID]
	if !ok {
		return entity.ErrNotFound
	}
	if a.AuthorID != authorID {
		return entity.ErrForbidden
	}
	delete(m.Articles, articleID)
	return nil
}
