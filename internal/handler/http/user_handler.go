package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
	"github.com/mikiasgoitom/articleboard/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/articleboard/internal/usecase/contract"
)

const maxAvatarBytes = 5 << 20

// UserHandlerInterface defines the methods for user handler to allow interface-based dependency injection (for testing/mocking)
type UserHandlerInterface interface {
	CreateUser(*gin.Context)
	Login(*gin.Context)
	RefreshToken(*gin.Context)
	Logout(*gin.Context)
	GetProfilePage(*gin.Context)
	GetCurrentUser(*gin.Context)
	UpdateUser(*gin.Context)
	ChangePassword(*gin.Context)
	GetAvatar(*gin.Context)
}

// Ensure UserHandler implements UserHandlerInterface
var _ UserHandlerInterface = (*UserHandler)(nil)

type UserHandler struct {
	userUsecase usecasecontract.IUserUseCase
	baseURL     string
}

func NewUserHandler(userUsecase usecasecontract.IUserUseCase, baseURL string) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		baseURL:     baseURL,
	}
}

// CreateUser handles user registration (signup)
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	user, accessToken, refreshToken, err := h.userUsecase.Register(c.Request.Context(), usecasecontract.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
	})
	if err != nil {
		DomainErrorHandler(c, err)
		return
	}

	SuccessHandler(c, http.StatusCreated, dto.LoginResponse{
		User:         dto.ToUserResponse(*user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Login handles user authentication
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	user, accessToken, refreshToken, err := h.userUsecase.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, entity.ErrUnauthorized) {
			ErrorHandler(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		DomainErrorHandler(c, err)
		return
	}

	SuccessHandler(c, http.StatusOK, dto.LoginResponse{
		User:         dto.ToUserResponse(*user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// RefreshToken handles token refresh
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, "Refresh token required")
		return
	}

	newAccessToken, newRefreshToken, err := h.userUsecase.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		ErrorHandler(c, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	SuccessHandler(c, http.StatusOK, gin.H{
		"access_token":  newAccessToken,
		"refresh_token": newRefreshToken,
	})
}

// Logout revokes the refresh token from the request body.
func (h *UserHandler) Logout(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, "Invalid or missing refresh token")
		return
	}

	if err := h.userUsecase.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		DomainErrorHandler(c, err)
		return
	}

	MessageHandler(c, http.StatusOK, "Logged out successfully")
}

// GetProfilePage serves a user's public profile with a page of their articles.
func (h *UserHandler) GetProfilePage(c *gin.Context) {
	userID, ok := parseID(c.Param("id"))
	if !ok {
		ErrorHandler(c, http.StatusBadRequest, "Invalid user id")
		return
	}
	// non-numeric pages fall back to the first
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := h.userUsecase.GetProfilePage(c.Request.Context(), userID, page)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			ErrorHandler(c, http.StatusNotFound, "User not found")
			return
		}
		DomainErrorHandler(c, err)
		return
	}

	SuccessHandler(c, http.StatusOK, dto.ProfilePageResponse{
		User:       dto.ToUserResponse(*result.User),
		Profile:    dto.ToProfileResponse(result.Profile, h.baseURL),
		Articles:   dto.ToArticleSummaries(result.Articles),
		Pagination: result.Meta,
	})
}

// GetCurrentUser handles retrieving the current authenticated user
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	page, err := h.userUsecase.GetProfilePage(c.Request.Context(), userID, 1)
	if err != nil {
		DomainErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.MeResponse{
		User:    dto.ToUserResponse(*page.User),
		Profile: dto.ToProfileResponse(page.Profile, h.baseURL),
	})
}

// UpdateUser handles updating the caller's account and profile. The body is a
// multipart form; an "avatar" file part replaces the profile picture.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return
	}

	var avatar *usecasecontract.AvatarUpload
	if fh, err := c.FormFile("avatar"); err == nil {
		if fh.Size > maxAvatarBytes {
			ErrorHandler(c, http.StatusBadRequest, "Avatar too large")
			return
		}
		f, err := fh.Open()
		if err != nil {
			ErrorHandler(c, http.StatusBadRequest, "Unreadable avatar")
			return
		}
		defer f.Close()
		avatar = &usecasecontract.AvatarUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Content:     f,
		}
	} else if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return
	}

	user, profile, err := h.userUsecase.UpdateProfile(c.Request.Context(), userID, usecasecontract.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		About:     req.About,
		GithubURL: req.GithubURL,
		BirthDate: req.BirthDate,
	}, avatar)
	if err != nil {
		DomainErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.MeResponse{
		User:    dto.ToUserResponse(*user),
		Profile: dto.ToProfileResponse(profile, h.baseURL),
	})
}

// ChangePassword replaces the caller's password and signs out every session.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req dto.ChangePasswordRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	if err := h.userUsecase.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword, req.PasswordConfirm); err != nil {
		DomainErrorHandler(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Password changed successfully")
}

// GetAvatar streams a stored profile picture.
func (h *UserHandler) GetAvatar(c *gin.Context) {
	rc, avatar, err := h.userUsecase.OpenAvatar(c.Request.Context(), c.Param("fileID"))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			ErrorHandler(c, http.StatusNotFound, "Avatar not found")
			return
		}
		DomainErrorHandler(c, err)
		return
	}
	defer rc.Close()

	c.Header("Cache-Control", "public, max-age=86400")
	c.DataFromReader(http.StatusOK, avatar.Size, avatar.ContentType, rc, nil)
}
