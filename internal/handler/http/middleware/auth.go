package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
	"github.com/mikiasgoitom/articleboard/internal/handler/http/dto"
)

// Authenticator resolves an access token to an active user.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*entity.User, error)
}

// AuthMiddleWare requires a valid "Authorization: Bearer <token>" header and stores
// the caller's id under "userID".
func AuthMiddleWare(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authorization header required"})
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid or expired token"})
			return
		}

		c.Set("userID", user.ID)
		c.Set("username", user.Username)
		c.Next()
	}
}
