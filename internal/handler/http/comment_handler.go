package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/articleboard/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/articleboard/internal/usecase/contract"
)

type CommentHandler struct {
	commentUsecase usecasecontract.ICommentUseCase
}

func NewCommentHandler(commentUsecase usecasecontract.ICommentUseCase) *CommentHandler {
	return &CommentHandler{commentUsecase: commentUsecase}
}

// CreateComment handles POST /articles/:id/comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return
	}
	articleID, ok := parseID(c.Param("id"))
	if !ok {
		ErrorHandler(c, http.StatusBadRequest, "Invalid article id")
		return
	}

	var req dto.CreateCommentRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	comment, err := h.commentUsecase.CreateComment(c.Request.Context(), articleID, userID, req.Text)
	if err != nil {
		DomainErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, dto.ToCommentResponse(comment))
}

// GetArticleComments handles GET /articles/:id/comments
func (h *CommentHandler) GetArticleComments(c *gin.Context) {
	articleID, ok := parseID(c.Param("id"))
	if !ok {
		ErrorHandler(c, http.StatusBadRequest, "Invalid article id")
		return
	}

	comments, err := h.commentUsecase.GetArticleComments(c.Request.Context(), articleID)
	if err != nil {
		DomainErrorHandler(c, err)
		return
	}
	resp := make([]dto.CommentResponse, 0, len(comments))
	for _, cm := range comments {
		resp = append(resp, dto.ToCommentResponse(cm))
	}
	SuccessHandler(c, http.StatusOK, gin.H{"comments": resp})
}

// DeleteComment handles DELETE /comments/:id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return
	}
	commentID, ok := parseID(c.Param("id"))
	if !ok {
		ErrorHandler(c, http.StatusBadRequest, "Invalid comment id")
		return
	}

	if err := h.commentUsecase.DeleteComment(c.Request.Context(), commentID, userID); err != nil {
		DomainErrorHandler(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Comment deleted successfully")
}
