package dto

import (
	"time"

	"github.com/mikiasgoitom/articleboard/internal/domain/contract"
	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/articleboard/internal/usecase/contract"
)

// Request DTOs for article handlers

// CreateArticleRequest defines the structure for creating a new article
type CreateArticleRequest struct {
	Title   string   `json:"title" binding:"required,max=255"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags" binding:"omitempty,dive,max=50"`
}

// UpdateArticleRequest defines the structure for updating an existing article
type UpdateArticleRequest struct {
	Title   *string  `json:"title" binding:"omitempty,max=255"`
	Content *string  `json:"content"`
	Tags    []string `json:"tags" binding:"omitempty,dive,max=50"`
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required,max=1000"`
}

// Response DTOs

type PaginationMeta = contract.PaginationMeta

// ArticleResponse defines the standard JSON response for a single article
type ArticleResponse struct {
	ID           uint64    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content,omitempty"`
	Preview      string    `json:"preview"`
	AuthorID     uint64    `json:"author_id"`
	Tags         []string  `json:"tags"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CommentResponse struct {
	ID        uint64    `json:"id"`
	ArticleID uint64    `json:"article_id"`
	AuthorID  uint64    `json:"author_id"`
	Text      string    `json:"text"`
	LikeCount int64     `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
}

// ArticleDetailResponse is an article with its comments and likers.
type ArticleDetailResponse struct {
	ArticleResponse
	Comments []CommentResponse `json:"comments"`
	Likers   []uint64          `json:"likers"`
}

// PaginatedArticleResponse defines the structure for a paginated list of articles.
type PaginatedArticleResponse struct {
	Articles   []ArticleResponse `json:"articles"`
	Pagination PaginationMeta    `json:"pagination"`
}

// DTO mappers

func ToArticleResponse(article *entity.Article) ArticleResponse {
	tags := article.Tags
	if tags == nil {
		tags = []string{}
	}
	return ArticleResponse{
		ID:           article.ID,
		Title:        article.Title,
		Content:      article.Content,
		Preview:      article.Preview,
		AuthorID:     article.AuthorID,
		Tags:         tags,
		LikeCount:    article.LikeCount,
		CommentCount: article.CommentCount,
		CreatedAt:    article.CreatedAt,
		UpdatedAt:    article.UpdatedAt,
	}
}

// ToArticleSummaries maps a listing; content is dropped in favour of the preview.
func ToArticleSummaries(articles []*entity.Article) []ArticleResponse {
	out := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		resp := ToArticleResponse(a)
		resp.Content = ""
		out = append(out, resp)
	}
	return out
}

func ToCommentResponse(comment *entity.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		ArticleID: comment.ArticleID,
		AuthorID:  comment.AuthorID,
		Text:      comment.Text,
		LikeCount: comment.LikeCount,
		CreatedAt: comment.CreatedAt,
	}
}

func ToArticleDetailResponse(detail *usecasecontract.ArticleDetail) ArticleDetailResponse {
	comments := make([]CommentResponse, 0, len(detail.Comments))
	for _, c := range detail.Comments {
		comments = append(comments, ToCommentResponse(c))
	}
	likers := detail.Likers
	if likers == nil {
		likers = []uint64{}
	}
	return ArticleDetailResponse{
		ArticleResponse: ToArticleResponse(detail.Article),
		Comments:        comments,
		Likers:          likers,
	}
}
