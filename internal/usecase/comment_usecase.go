package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mikiasgoitom/articleboard/internal/domain/contract"
	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/articleboard/internal/usecase/contract"
)

const maxCommentLength = 1000

// CommentUsecase implements ICommentUseCase
type CommentUsecase struct {
	commentRepo  contract.ICommentRepository
	articleRepo  contract.IArticleRepository
	articleCache contract.IArticleCache
	logger       usecasecontract.IAppLogger
}

func NewCommentUsecase(commentRepo contract.ICommentRepository, articleRepo contract.IArticleRepository, logger usecasecontract.IAppLogger) *CommentUsecase {
	return &CommentUsecase{
		commentRepo: commentRepo,
		articleRepo: articleRepo,
		logger:      logger,
	}
}

var _ usecasecontract.ICommentUseCase = (*CommentUsecase)(nil)

func (uc *CommentUsecase) SetArticleCache(cache contract.IArticleCache) {
	uc.articleCache = cache
}

func (uc *CommentUsecase) CreateComment(ctx context.Context, articleID, authorID uint64, text string) (*entity.Comment, error) {
	if authorID == 0 {
		return nil, entity.ErrUnauthorized
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", entity.ErrInvalidRequest)
	}
	if len([]rune(text)) > maxCommentLength {
		return nil, fmt.Errorf("%w: comment must be at most %d characters", entity.ErrInvalidRequest, maxCommentLength)
	}
	if _, err := uc.articleRepo.GetArticleByID(ctx, articleID); err != nil {
		return nil, err
	}

	now := time.Now()
	comment := &entity.Comment{
		ArticleID: articleID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.commentRepo.CreateComment(ctx, comment); err != nil {
		uc.logger.Errorf("failed to create comment on article %d: %v", articleID, err)
		return nil, err
	}
	uc.invalidate(ctx, articleID)
	return comment, nil
}

// GetArticleComments returns the article's comments, oldest first.
func (uc *CommentUsecase) GetArticleComments(ctx context.Context, articleID uint64) ([]*entity.Comment, error) {
	if _, err := uc.articleRepo.GetArticleByID(ctx, articleID); err != nil {
		return nil, err
	}
	return uc.commentRepo.ListCommentsByArticle(ctx, articleID)
}

func (uc *CommentUsecase) DeleteComment(ctx context.Context, commentID, authorID uint64) error {
	comment, err := uc.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != authorID {
		return fmt.Errorf("%w: only the author can delete this comment", entity.ErrForbidden)
	}
	if err := uc.commentRepo.DeleteComment(ctx, commentID); err != nil {
		uc.logger.Errorf("failed to delete comment %d: %v", commentID, err)
		return err
	}
	uc.invalidate(ctx, comment.ArticleID)
	return nil
}

func (uc *CommentUsecase) invalidate(ctx context.Context, articleID uint64) {
	if uc.articleCache == nil {
		return
	}
	if err := uc.articleCache.InvalidateArticle(ctx, articleID); err != nil {
		uc.logger.Warnf("failed to invalidate cached article %d: %v", articleID, err)
	}
}
