package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mikiasgoitom/articleboard/internal/domain/contract"
	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
	"github.com/mikiasgoitom/articleboard/internal/infrastructure/metrics"
	usecasecontract "github.com/mikiasgoitom/articleboard/internal/usecase/contract"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	maxTitleLength  = 255
)

// ArticleUsecase implements IArticleUseCase
type ArticleUsecase struct {
	articleRepo  contract.IArticleRepository
	commentRepo  contract.ICommentRepository
	reactionRepo contract.IReactionRepository
	previewer    contract.IPreviewer
	logger       usecasecontract.IAppLogger
	articleCache contract.IArticleCache
}

// NewArticleUsecase creates a new instance of ArticleUsecase
func NewArticleUsecase(
	articleRepo contract.IArticleRepository,
	commentRepo contract.ICommentRepository,
	reactionRepo contract.IReactionRepository,
	previewer contract.IPreviewer,
	logger usecasecontract.IAppLogger,
) *ArticleUsecase {
	return &ArticleUsecase{
		articleRepo:  articleRepo,
		commentRepo:  commentRepo,
		reactionRepo: reactionRepo,
		previewer:    previewer,
		logger:       logger,
	}
}

var _ usecasecontract.IArticleUseCase = (*ArticleUsecase)(nil)

// SetArticleCache enables cache-aside reads of article details.
func (uc *ArticleUsecase) SetArticleCache(cache contract.IArticleCache) {
	uc.articleCache = cache
}

func (uc *ArticleUsecase) CreateArticle(ctx context.Context, authorID uint64, title, content string, tags []string) (*entity.Article, error) {
	if authorID == 0 {
		return nil, entity.ErrUnauthorized
	}
	title = strings.TrimSpace(title)
	if err := validateArticleFields(title, content); err != nil {
		return nil, err
	}

	now := time.Now()
	article := &entity.Article{
		Title:     title,
		Content:   content,
		Preview:   uc.previewer.Preview(content),
		AuthorID:  authorID,
		Tags:      normalizeTags(tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.articleRepo.CreateArticle(ctx, article); err != nil {
		uc.logger.Errorf("failed to create article: %v", err)
		return nil, fmt.Errorf("failed to create article: %w", err)
	}
	return article, nil
}

// GetArticles returns one page of articles, newest first.
func (uc *ArticleUsecase) GetArticles(ctx context.Context, page, pageSize int) ([]*entity.Article, contract.PaginationMeta, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	pagination := contract.Pagination{Page: page, PageSize: pageSize}
	articles, total, err := uc.articleRepo.ListArticles(ctx, pagination)
	if err != nil {
		uc.logger.Errorf("failed to list articles: %v", err)
		return nil, contract.PaginationMeta{}, err
	}
	return articles, contract.NewPaginationMeta(pagination, total), nil
}

// GetArticleDetail returns the article with its comments and like-set.
// The article body may come from cache, but counters are always read from the database.
func (uc *ArticleUsecase) GetArticleDetail(ctx context.Context, articleID uint64) (*usecasecontract.ArticleDetail, error) {
	article, err := uc.loadArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	comments, err := uc.commentRepo.ListCommentsByArticle(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	likers, err := uc.reactionRepo.ListLikers(ctx, entity.LikeableArticle, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list likers: %w", err)
	}
	return &usecasecontract.ArticleDetail{
		Article:  article,
		Comments: comments,
		Likers:   likers,
	}, nil
}

func (uc *ArticleUsecase) loadArticle(ctx context.Context, articleID uint64) (*entity.Article, error) {
	if uc.articleCache != nil {
		cached, ok, err := uc.articleCache.GetArticle(ctx, articleID)
		if err != nil {
			uc.logger.Warnf("article cache read failed for %d: %v", articleID, err)
		}
		if ok {
			metrics.ArticleCacheHits.Inc()
			likes, comments, err := uc.articleRepo.GetArticleCounters(ctx, articleID)
			if err != nil {
				return nil, err
			}
			cached.LikeCount = likes
			cached.CommentCount = comments
			return cached, nil
		}
		metrics.ArticleCacheMisses.Inc()
	}

	article, err := uc.articleRepo.GetArticleByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if uc.articleCache != nil {
		if err := uc.articleCache.SetArticle(ctx, article); err != nil {
			uc.logger.Warnf("article cache write failed for %d: %v", articleID, err)
		}
	}
	return article, nil
}

// UpdateArticle applies the non-nil fields. A nil tags slice leaves tags untouched;
// an empty one clears them.
func (uc *ArticleUsecase) UpdateArticle(ctx context.Context, articleID, authorID uint64, title, content *string, tags []string) (*entity.Article, error) {
	article, err := uc.articleRepo.GetArticleByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != authorID {
		return nil, fmt.Errorf("%w: only the author can edit this article", entity.ErrForbidden)
	}

	if title != nil {
		article.Title = strings.TrimSpace(*title)
	}
	if content != nil {
		article.Content = *content
		article.Preview = uc.previewer.Preview(*content)
	}
	if err := validateArticleFields(article.Title, article.Content); err != nil {
		return nil, err
	}
	if tags != nil {
		article.Tags = normalizeTags(tags)
	}
	article.UpdatedAt = time.Now()

	if err := uc.articleRepo.UpdateArticle(ctx, article); err != nil {
		uc.logger.Errorf("failed to update article %d: %v", articleID, err)
		return nil, err
	}
	uc.invalidate(ctx, articleID)
	return article, nil
}

func (uc *ArticleUsecase) DeleteArticle(ctx context.Context, articleID, authorID uint64) error {
	article, err := uc.articleRepo.GetArticleByID(ctx, articleID)
	if err != nil {
		return err
	}
	if article.AuthorID != authorID {
		return fmt.Errorf("%w: only the author can delete this article", entity.ErrForbidden)
	}
	if err := uc.articleRepo.DeleteArticle(ctx, articleID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return err
		}
		uc.logger.Errorf("failed to delete article %d: %v", articleID, err)
		return err
	}
	uc.invalidate(ctx, articleID)
	return nil
}

func (uc *ArticleUsecase) invalidate(ctx context.Context, articleID uint64) {
	if uc.articleCache == nil {
		return
	}
	if err := uc.articleCache.InvalidateArticle(ctx, articleID); err != nil {
		uc.logger.Warnf("failed to invalidate cached article %d: %v", articleID, err)
	}
}

func validateArticleFields(title, content string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", entity.ErrInvalidRequest)
	}
	if len([]rune(title)) > maxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", entity.ErrInvalidRequest, maxTitleLength)
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: content is required", entity.ErrInvalidRequest)
	}
	return nil
}

// normalizeTags lowercases, trims and de-duplicates tag names.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
