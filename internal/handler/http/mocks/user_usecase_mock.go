package mocks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mikiasgoitom/articleboard/internal/domain/contract"
	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/articleboard/internal/usecase/contract"
)

// MockUserUsecase is a mock implementation of the UserUsecase interface
type MockUserUsecase struct {
	// Control mock behavior
	ShouldFailCreateUser     bool
	ShouldFailLogin          bool
	ShouldFailGetByID        bool
	ShouldFailUpdateUser     bool
	ShouldFailRefreshToken   bool
	ShouldFailLogout         bool
	ShouldFailAuthenticate   bool
	ShouldFailChangePassword bool

	// Return values
	MockUser         entity.User
	MockProfile      entity.Profile
	MockAccessToken  string
	MockRefreshToken string
	MockAvatar       string

	// Captured arguments
	LastUpdate      usecasecontract.ProfileUpdate
	LastAvatarBytes []byte
	LastPage        int
}

// Ensure MockUserUsecase implements the correct interface for handler.NewUserHandler
var _ usecasecontract.IUserUseCase = (*MockUserUsecase)(nil)

func NewMockUserUsecase() *MockUserUsecase {
	return &MockUserUsecase{
		MockUser: entity.User{
			ID:       1,
			Username: "testuser",
			Email:    "test@example.com",
			IsActive: true,
		},
		MockProfile:      entity.Profile{UserID: 1, About: "hello"},
		MockAccessToken:  "mock_access_token",
		MockRefreshToken: "mock_refresh_token",
		MockAvatar:       "PNGDATA",
	}
}

func (m *MockUserUsecase) Register(ctx context.Context, in usecasecontract.RegisterInput) (*entity.User, string, string, error) {
	if m.ShouldFailCreateUser {
		return nil, "", "", fmt.Errorf("%w: username is taken", entity.ErrConflict)
	}
	user := m.MockUser
	user.Username = in.Username
	user.Email = in.Email
	return &user, m.MockAccessToken, m.MockRefreshToken, nil
}

func (m *MockUserUsecase) Login(ctx context.Context, login, password string) (*entity.User, string, string, error) {
	if m.ShouldFailLogin {
		return nil, "", "", fmt.Errorf("%w: invalid credentials", entity.ErrUnauthorized)
	}
	return &m.MockUser, m.MockAccessToken, m.MockRefreshToken, nil
}

func (m *MockUserUsecase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	if m.ShouldFailAuthenticate || accessToken != m.MockAccessToken {
		return nil, entity.ErrUnauthorized
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	if m.ShouldFailRefreshToken {
		return "", "", errors.New("refresh token failed")
	}
	return m.MockAccessToken, m.MockRefreshToken, nil
}

func (m *MockUserUsecase) Logout(ctx context.Context, refreshToken string) error {
	if m.ShouldFailLogout {
		return errors.New("logout failed")
	}
	return nil
}

func (m *MockUserUsecase) GetUserByID(ctx context.Context, userID uint64) (*entity.User, error) {
	if m.ShouldFailGetByID || userID != m.MockUser.ID {
		return nil, entity.ErrNotFound
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) GetProfilePage(ctx context.Context, userID uint64, page int) (*usecasecontract.ProfilePage, error) {
	m.LastPage = page
	user, err := m.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &usecasecontract.ProfilePage{
		User:     user,
		Profile:  &m.MockProfile,
		Articles: []*entity.Article{{ID: 3, Title: "first", Content: "<p>body</p>", Preview: "body", AuthorID: userID}},
		Meta:     contract.NewPaginationMeta(contract.Pagination{Page: 1, PageSize: 5}, 1),
	}, nil
}

func (m *MockUserUsecase) UpdateProfile(ctx context.Context, userID uint64, update usecasecontract.ProfileUpdate, avatar *usecasecontract.AvatarUpload) (*entity.User, *entity.Profile, error) {
	if m.ShouldFailUpdateUser {
		return nil, nil, fmt.Errorf("%w: bad birth date", entity.ErrInvalidRequest)
	}
	m.LastUpdate = update
	user := m.MockUser
	profile := m.MockProfile
	if update.FirstName != nil {
		user.FirstName = update.FirstName
	}
	if update.About != nil {
		profile.About = *update.About
	}
	if avatar != nil {
		data, err := io.ReadAll(avatar.Content)
		if err != nil {
			return nil, nil, err
		}
		m.LastAvatarBytes = data
		id := "avatar-1"
		profile.AvatarID = &id
	}
	return &user, &profile, nil
}

func (m *MockUserUsecase) ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword, confirm string) error {
	if m.ShouldFailChangePassword {
		return fmt.Errorf("%w: old password is incorrect", entity.ErrInvalidRequest)
	}
	return nil
}

func (m *MockUserUsecase) OpenAvatar(ctx context.Context, avatarID string) (io.ReadCloser, *entity.Avatar, error) {
	if avatarID != "avatar-1" {
		return nil, nil, entity.ErrNotFound
	}
	return io.NopCloser(strings.NewReader(m.MockAvatar)), &entity.Avatar{
		ID:          avatarID,
		ContentType: "image/png",
		Size:        int64(len(m.MockAvatar)),
	}, nil
}
