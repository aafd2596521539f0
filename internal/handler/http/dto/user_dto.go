package dto

// CreateUserRequest is the registration payload.
type CreateUserRequest struct {
	Username        string `json:"username" binding:"required,username"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,password"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

// LoginRequest accepts either a username or an email in Login.
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateUserRequest is bound from a multipart form so an avatar can ride along.
type UpdateUserRequest struct {
	FirstName *string `form:"first_name"`
	LastName  *string `form:"last_name"`
	Email     *string `form:"email" binding:"omitempty,email"`
	About     *string `form:"about" binding:"omitempty,max=2000"`
	GithubURL *string `form:"github_url" binding:"omitempty,url"`
	BirthDate *string `form:"birth_date"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,password"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

// ProfilePageResponse is a user's public page with one page of their articles.
type ProfilePageResponse struct {
	User       UserResponse      `json:"user"`
	Profile    ProfileResponse   `json:"profile"`
	Articles   []ArticleResponse `json:"articles"`
	Pagination PaginationMeta    `json:"pagination"`
}
