package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
	"github.com/mikiasgoitom/articleboard/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/articleboard/internal/usecase/contract"
)

const likeAction = "post"

// InteractionHandler serves the like toggles for articles and comments.
type InteractionHandler struct {
	reactionUsecase usecasecontract.IReactionUseCase
	strict          bool
}

// NewInteractionHandler builds the handler. With strict off a request without the
// action marker is answered with 204 and nothing changes.
func NewInteractionHandler(reactionUsecase usecasecontract.IReactionUseCase, strict bool) *InteractionHandler {
	return &InteractionHandler{
		reactionUsecase: reactionUsecase,
		strict:          strict,
	}
}

func (h *InteractionHandler) LikeArticleHandler(c *gin.Context) {
	h.toggle(c, entity.LikeableArticle, "articlepk")
}

func (h *InteractionHandler) LikeCommentHandler(c *gin.Context) {
	h.toggle(c, entity.LikeableComment, "commentpk")
}

func (h *InteractionHandler) toggle(c *gin.Context, kind entity.LikeableKind, idField string) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if c.PostForm("action") != likeAction {
		if !h.strict {
			c.Status(http.StatusNoContent)
			return
		}
		ErrorHandler(c, http.StatusBadRequest, "missing or invalid action")
		return
	}

	entityID, ok := parseID(c.PostForm(idField))
	if !ok {
		ErrorHandler(c, http.StatusBadRequest, "invalid "+idField)
		return
	}

	count, err := h.reactionUsecase.Toggle(c.Request.Context(), kind, entityID, userID)
	if err != nil {
		DomainErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ReactionResponse{Result: count})
}

// LikersHandler lists the users who like an article or comment.
func (h *InteractionHandler) LikersHandler(kind entity.LikeableKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		entityID, ok := parseID(c.Param("id"))
		if !ok {
			ErrorHandler(c, http.StatusBadRequest, "invalid id")
			return
		}
		likers, err := h.reactionUsecase.Likers(c.Request.Context(), kind, entityID)
		if err != nil {
			DomainErrorHandler(c, err)
			return
		}
		if likers == nil {
			likers = []uint64{}
		}
		SuccessHandler(c, http.StatusOK, gin.H{"likers": likers, "count": len(likers)})
	}
}

// LikedHandler reports whether the caller likes an article or comment.
func (h *InteractionHandler) LikedHandler(kind entity.LikeableKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
			return
		}
		entityID, ok := parseID(c.Param("id"))
		if !ok {
			ErrorHandler(c, http.StatusBadRequest, "invalid id")
			return
		}
		liked, err := h.reactionUsecase.HasLiked(c.Request.Context(), kind, entityID, userID)
		if err != nil {
			DomainErrorHandler(c, err)
			return
		}
		SuccessHandler(c, http.StatusOK, gin.H{"liked": liked})
	}
}
