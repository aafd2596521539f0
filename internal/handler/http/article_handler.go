package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/articleboard/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/articleboard/internal/usecase/contract"
)

// ArticleHandlerInterface defines the methods for article handler to allow interface-based dependency injection (for testing/mocking)
type ArticleHandlerInterface interface {
	CreateArticleHandler(*gin.Context)
	GetArticlesHandler(*gin.Context)
	GetArticleDetailHandler(*gin.Context)
	UpdateArticleHandler(*gin.Context)
	DeleteArticleHandler(*gin.Context)
}

var _ ArticleHandlerInterface = (*ArticleHandler)(nil)

type ArticleHandler struct {
	articleUsecase usecasecontract.IArticleUseCase
}

func NewArticleHandler(articleUsecase usecasecontract.IArticleUseCase) *ArticleHandler {
	return &ArticleHandler{
		articleUsecase: articleUsecase,
	}
}

// CreateArticleHandler
func (h *ArticleHandler) CreateArticleHandler(cxt *gin.Context) {
	authorID, ok := currentUserID(cxt)
	if !ok {
		ErrorHandler(cxt, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req dto.CreateArticleRequest
	if err := BindAndValidate(cxt, &req); err != nil {
		return
	}

	article, err := h.articleUsecase.CreateArticle(cxt.Request.Context(), authorID, req.Title, req.Content, req.Tags)
	if err != nil {
		DomainErrorHandler(cxt, err)
		return
	}
	SuccessHandler(cxt, http.StatusCreated, dto.ToArticleResponse(article))
}

// GetArticlesHandler
func (h *ArticleHandler) GetArticlesHandler(cxt *gin.Context) {
	page, err := strconv.Atoi(cxt.DefaultQuery("page", "1"))
	if err != nil {
		ErrorHandler(cxt, http.StatusBadRequest, "Invalid page number")
		return
	}
	pageSize, err := strconv.Atoi(cxt.DefaultQuery("pageSize", "10"))
	if err != nil {
		ErrorHandler(cxt, http.StatusBadRequest, "Invalid page size")
		return
	}

	articles, meta, err := h.articleUsecase.GetArticles(cxt.Request.Context(), page, pageSize)
	if err != nil {
		DomainErrorHandler(cxt, err)
		return
	}
	SuccessHandler(cxt, http.StatusOK, dto.PaginatedArticleResponse{
		Articles:   dto.ToArticleSummaries(articles),
		Pagination: meta,
	})
}

// GetArticleDetailHandler returns the article with its comments and likers.
func (h *ArticleHandler) GetArticleDetailHandler(cxt *gin.Context) {
	articleID, ok := parseID(cxt.Param("id"))
	if !ok {
		ErrorHandler(cxt, http.StatusBadRequest, "Invalid article id")
		return
	}

	detail, err := h.articleUsecase.GetArticleDetail(cxt.Request.Context(), articleID)
	if err != nil {
		DomainErrorHandler(cxt, err)
		return
	}
	SuccessHandler(cxt, http.StatusOK, dto.ToArticleDetailResponse(detail))
}

// UpdateArticleHandler
func (h *ArticleHandler) UpdateArticleHandler(cxt *gin.Context) {
	authorID, ok := currentUserID(cxt)
	if !ok {
		ErrorHandler(cxt, http.StatusUnauthorized, "User not authenticated")
		return
	}
	articleID, ok := parseID(cxt.Param("id"))
	if !ok {
		ErrorHandler(cxt, http.StatusBadRequest, "Invalid article id")
		return
	}

	var req dto.UpdateArticleRequest
	if err := BindAndValidate(cxt, &req); err != nil {
		return
	}

	article, err := h.articleUsecase.UpdateArticle(cxt.Request.Context(), articleID, authorID, req.Title, req.Content, req.Tags)
	if err != nil {
		DomainErrorHandler(cxt, err)
		return
	}
	SuccessHandler(cxt, http.StatusOK, dto.ToArticleResponse(article))
}

// DeleteArticleHandler
func (h *ArticleHandler) DeleteArticleHandler(cxt *gin.Context) {
	authorID, ok := currentUserID(cxt)
	if !ok {
		ErrorHandler(cxt, http.StatusUnauthorized, "User not authenticated")
		return
	}
	articleID, ok := parseID(cxt.Param("id"))
	if !ok {
		ErrorHandler(cxt, http.StatusBadRequest, "Invalid article id")
		return
	}

	if err := h.articleUsecase.DeleteArticle(cxt.Request.Context(), articleID, authorID); err != nil {
		DomainErrorHandler(cxt, err)
		return
	}
	MessageHandler(cxt, http.StatusOK, "Article deleted successfully")
}
