package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/articleboard/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/articleboard/internal/usecase/contract"
)

const apiV2PageSize = 100

// APIV2Handler is the plain JSON article API under /api/v2.
type APIV2Handler struct {
	articleUsecase usecasecontract.IArticleUseCase
}

func NewAPIV2Handler(articleUsecase usecasecontract.IArticleUseCase) *APIV2Handler {
	return &APIV2Handler{articleUsecase: articleUsecase}
}

// ListArticles returns a bare JSON array, newest first.
func (h *APIV2Handler) ListArticles(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		ErrorHandler(c, http.StatusBadRequest, "Invalid page number")
		return
	}
	articles, _, err := h.articleUsecase.GetArticles(c.Request.Context(), page, apiV2PageSize)
	if err != nil {
		DomainErrorHandler(c, err)
		return
	}
	resp := make([]dto.ArticleResponse, 0, len(articles))
	for _, a := range articles {
		resp = append(resp, dto.ToArticleResponse(a))
	}
	SuccessHandler(c, http.StatusOK, resp)
}

// CreateArticle echoes the validated payload with 201.
func (h *APIV2Handler) CreateArticle(c *gin.Context) {
	authorID, ok := currentUserID(c)
	if !ok {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req dto.CreateArticleRequest
	if !bindArticle(c, &req) {
		return
	}

	article, err := h.articleUsecase.CreateArticle(c.Request.Context(), authorID, req.Title, req.Content, req.Tags)
	if err != nil {
		DomainErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, dto.CreateArticleRequest{
		Title:   article.Title,
		Content: article.Content,
		Tags:    article.Tags,
	})
}

// UpdateArticle replaces title, content and tags of an article owned by the caller.
func (h *APIV2Handler) UpdateArticle(c *gin.Context) {
	authorID, ok := currentUserID(c)
	if !ok {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return
	}
	articleID, ok := parseID(c.Param("id"))
	if !ok {
		ErrorHandler(c, http.StatusNotFound, "Article not found")
		return
	}

	var req dto.CreateArticleRequest
	if !bindArticle(c, &req) {
		return
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	article, err := h.articleUsecase.UpdateArticle(c.Request.Context(), articleID, authorID, &req.Title, &req.Content, tags)
	if err != nil {
		DomainErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToArticleResponse(article))
}

func bindArticle(c *gin.Context, req *dto.CreateArticleRequest) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		fields := fieldErrors(err)
		if len(fields) == 0 {
			ErrorHandler(c, http.StatusBadRequest, "Invalid JSON body")
			return false
		}
		SuccessHandler(c, http.StatusBadRequest, dto.ValidationErrorResponse{Error: "validation failed", Fields: fields})
		return false
	}
	return true
}
