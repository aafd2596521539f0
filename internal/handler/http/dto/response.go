package dto

import (
	"time"

	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
)

// UserResponse is the DTO for a user.
type UserResponse struct {
	ID        uint64  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	CreatedAt string  `json:"created_at"`
}

// ProfileResponse is the DTO for a user's profile.
type ProfileResponse struct {
	About     string  `json:"about"`
	BirthDate *string `json:"birth_date,omitempty"`
	GithubURL *string `json:"github_url,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// MeResponse combines the account and its profile.
type MeResponse struct {
	User    UserResponse    `json:"user"`
	Profile ProfileResponse `json:"profile"`
}

// LoginResponse is the DTO for a successful login.
type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// converts an entity.User to a UserResponse DTO.
func ToUserResponse(user entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

// ToProfileResponse builds the profile DTO; baseURL prefixes the avatar link.
func ToProfileResponse(profile *entity.Profile, baseURL string) ProfileResponse {
	if profile == nil {
		return ProfileResponse{}
	}
	resp := ProfileResponse{About: profile.About, GithubURL: profile.GithubURL}
	if profile.BirthDate != nil {
		s := profile.BirthDate.Format("2006-01-02")
		resp.BirthDate = &s
	}
	if profile.AvatarID != nil {
		u := baseURL + "/api/v1/avatars/" + *profile.AvatarID
		resp.AvatarURL = &u
	}
	return resp
}

// ReactionResponse carries the like count after a toggle.
type ReactionResponse struct {
	Result int64 `json:"result"`
}

// MessageResponse is a generic response for success/error messages.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is a response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse lists the offending fields of a rejected payload.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}
