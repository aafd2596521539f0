package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
	"github.com/mikiasgoitom/articleboard/internal/handler/http/dto"
)

// ErrorHandler centralizes error handling for HTTP responses
func ErrorHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// SuccessHandler centralizes success responses
func SuccessHandler(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// MessageHandler centralizes message responses
func MessageHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.MessageResponse{Message: message})
}

// BindAndValidate binds JSON request and validates it
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return err
	}
	return nil
}

// DomainErrorHandler maps a usecase error onto its status code.
func DomainErrorHandler(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		ErrorHandler(c, http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrUnauthorized):
		ErrorHandler(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, entity.ErrInvalidRequest):
		ErrorHandler(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrForbidden):
		ErrorHandler(c, http.StatusForbidden, err.Error())
	case errors.Is(err, entity.ErrConflict):
		ErrorHandler(c, http.StatusConflict, err.Error())
	default:
		// driver messages stay in the logs
		_ = c.Error(err)
		ErrorHandler(c, http.StatusInternalServerError, "internal server error")
	}
}

// currentUserID reads the id stored by the auth middleware.
func currentUserID(c *gin.Context) (uint64, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok && id > 0
}

// parseID accepts positive decimal integers only.
func parseID(raw string) (uint64, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// fieldErrors flattens validator errors into field -> failed tag.
func fieldErrors(err error) map[string]string {
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
	}
	return fields
}
