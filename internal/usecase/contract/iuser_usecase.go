package usecasecontract

import (
	"context"
	"io"

	"github.com/mikiasgoitom/articleboard/internal/domain/contract"
	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
	FirstName       string
	LastName        string
}

// ProfileUpdate carries optional changes; nil fields are left untouched.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	About     *string
	GithubURL *string
	BirthDate *string
}

// AvatarUpload is an uploaded profile picture.
type AvatarUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// ProfilePage is a user's public profile with one page of their articles.
type ProfilePage struct {
	User     *entity.User
	Profile  *entity.Profile
	Articles []*entity.Article
	Meta     contract.PaginationMeta
}

// IUserUseCase defines the interface for account-related operations.
type IUserUseCase interface {
	Register(ctx context.Context, in RegisterInput) (*entity.User, string, string, error)
	Login(ctx context.Context, login, password string) (*entity.User, string, string, error)
	Authenticate(ctx context.Context, accessToken string) (*entity.User, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUserByID(ctx context.Context, userID uint64) (*entity.User, error)
	GetProfilePage(ctx context.Context, userID uint64, page int) (*ProfilePage, error)
	UpdateProfile(ctx context.Context, userID uint64, update ProfileUpdate, avatar *AvatarUpload) (*entity.User, *entity.Profile, error)
	ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword, confirm string) error
	OpenAvatar(ctx context.Context, avatarID string) (io.ReadCloser, *entity.Avatar, error)
}
