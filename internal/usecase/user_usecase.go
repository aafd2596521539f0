package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mikiasgoitom/articleboard/internal/domain/contract"
	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/articleboard/internal/usecase/contract"
)

const birthDateLayout = "2006-01-02"

var errInvalidCredentials = fmt.Errorf("%w: invalid credentials", entity.ErrUnauthorized)

// UserUsecase implements the IUserUseCase interface.
type UserUsecase struct {
	userRepo      contract.IUserRepository
	tokenRepo     contract.ITokenRepository
	articleRepo   contract.IArticleRepository
	avatarStorage contract.IAvatarStorage
	hasher        contract.IHasher
	jwtService    JWTService
	logger        usecasecontract.IAppLogger
	config        usecasecontract.IConfigProvider
	validator     usecasecontract.IValidator
}

// NewUserUsecase creates a new UserUsecase instance.
func NewUserUsecase(
	userRepo contract.IUserRepository,
	tokenRepo contract.ITokenRepository,
	articleRepo contract.IArticleRepository,
	hasher contract.IHasher,
	jwtService JWTService,
	logger usecasecontract.IAppLogger,
	cfg usecasecontract.IConfigProvider,
	validator usecasecontract.IValidator,
) *UserUsecase {
	return &UserUsecase{
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		articleRepo: articleRepo,
		hasher:      hasher,
		jwtService:  jwtService,
		logger:      logger,
		config:      cfg,
		validator:   validator,
	}
}

// check if UserUsecase implements the IUserUseCase
var _ usecasecontract.IUserUseCase = (*UserUsecase)(nil)

// SetAvatarStorage enables avatar uploads.
func (uc *UserUsecase) SetAvatarStorage(storage contract.IAvatarStorage) {
	uc.avatarStorage = storage
}

// Register creates the user together with an empty profile and logs them in.
func (uc *UserUsecase) Register(ctx context.Context, in usecasecontract.RegisterInput) (*entity.User, string, string, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, "", "", fmt.Errorf("%w: username is required", entity.ErrInvalidRequest)
	}
	if err := uc.validator.ValidateEmail(in.Email); err != nil {
		return nil, "", "", fmt.Errorf("%w: invalid email format", entity.ErrInvalidRequest)
	}
	if in.Password != in.PasswordConfirm {
		return nil, "", "", fmt.Errorf("%w: passwords do not match", entity.ErrInvalidRequest)
	}
	if err := uc.validator.ValidatePasswordStrength(in.Password); err != nil {
		return nil, "", "", fmt.Errorf("%w: weak password: %v", entity.ErrInvalidRequest, err)
	}

	if err := uc.ensureEmailFree(ctx, in.Email, 0); err != nil {
		return nil, "", "", err
	}
	existing, err := uc.userRepo.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		uc.logger.Errorf("failed to check for existing user by username: %v", err)
		return nil, "", "", err
	}
	if existing != nil {
		return nil, "", "", fmt.Errorf("%w: user with username %s", entity.ErrConflict, username)
	}

	hashedPassword, err := uc.hasher.HashPassword(in.Password)
	if err != nil {
		uc.logger.Errorf("failed to hash password: %v", err)
		return nil, "", "", fmt.Errorf("failed to process password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Username:     username,
		Email:        in.Email,
		PasswordHash: hashedPassword,
		IsActive:     true,
		FirstName:    optional(in.FirstName),
		LastName:     optional(in.LastName),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	profile := &entity.Profile{UpdatedAt: now}
	if err := uc.userRepo.CreateUser(ctx, user, profile); err != nil {
		uc.logger.Errorf("failed to create user: %v", err)
		return nil, "", "", err
	}

	accessToken, refreshToken, err := uc.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, "", "", err
	}
	uc.logger.Infof("registered user %d (%s)", user.ID, user.Username)
	return user, accessToken, refreshToken, nil
}

// Login accepts either a username or an email address.
func (uc *UserUsecase) Login(ctx context.Context, login, password string) (*entity.User, string, string, error) {
	var (
		user *entity.User
		err  error
	)
	if uc.validator.ValidateEmail(login) == nil {
		user, err = uc.userRepo.GetUserByEmail(ctx, login)
	} else {
		user, err = uc.userRepo.GetUserByUsername(ctx, login)
	}
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, "", "", errInvalidCredentials
		}
		uc.logger.Errorf("failed to retrieve user for login: %v", err)
		return nil, "", "", err
	}

	if !user.IsActive {
		return nil, "", "", fmt.Errorf("%w: account not active", entity.ErrUnauthorized)
	}
	if err := uc.hasher.ComparePasswordHash(password, user.PasswordHash); err != nil {
		return nil, "", "", errInvalidCredentials
	}

	accessToken, refreshToken, err := uc.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, "", "", err
	}
	return user, accessToken, refreshToken, nil
}

func (uc *UserUsecase) issueTokens(ctx context.Context, userID uint64) (string, string, error) {
	accessToken, err := uc.jwtService.GenerateAccessToken(userID)
	if err != nil {
		uc.logger.Errorf("failed to generate access token: %v", err)
		return "", "", fmt.Errorf("failed to generate token: %w", err)
	}
	refreshToken, tokenID, err := uc.jwtService.GenerateRefreshToken(userID)
	if err != nil {
		uc.logger.Errorf("failed to generate refresh token: %v", err)
		return "", "", fmt.Errorf("failed to generate token: %w", err)
	}

	refreshTokenExpiry := uc.config.GetRefreshTokenExpiry()
	if refreshTokenExpiry <= 0 {
		return "", "", errors.New("invalid refresh token expiry configuration")
	}
	now := time.Now()
	tokenEntity := &entity.Token{
		ID:        tokenID,
		UserID:    userID,
		TokenHash: uc.hasher.HashString(refreshToken),
		ExpiresAt: now.Add(refreshTokenExpiry),
		CreatedAt: now,
	}
	if err := uc.tokenRepo.CreateToken(ctx, tokenEntity); err != nil {
		uc.logger.Errorf("failed to store refresh token for user %d: %v", userID, err)
		return "", "", fmt.Errorf("failed to store token: %w", err)
	}
	return accessToken, refreshToken, nil
}

// Authenticate resolves an access token to an active user.
func (uc *UserUsecase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	claims, err := uc.jwtService.ParseAccessToken(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid access token: %v", entity.ErrUnauthorized, err)
	}
	user, err := uc.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", entity.ErrUnauthorized)
		}
		uc.logger.Errorf("failed to retrieve user during authentication: %v", err)
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account not active", entity.ErrUnauthorized)
	}
	return user, nil
}

// RefreshToken rotates a refresh token, returning a new access/refresh pair.
func (uc *UserUsecase) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := uc.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid refresh token: %v", entity.ErrUnauthorized, err)
	}

	storedToken, err := uc.tokenRepo.GetTokenByID(ctx, claims.TokenID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return "", "", fmt.Errorf("%w: refresh token not found or invalidated", entity.ErrUnauthorized)
		}
		uc.logger.Errorf("failed to retrieve stored refresh token: %v", err)
		return "", "", err
	}
	if storedToken.Revoked {
		return "", "", fmt.Errorf("%w: refresh token has been revoked", entity.ErrUnauthorized)
	}
	if !uc.hasher.CheckHash(refreshToken, storedToken.TokenHash) {
		uc.logger.Warnf("refresh token mismatch for user %d", claims.UserID)
		_ = uc.tokenRepo.RevokeToken(ctx, storedToken.ID)
		return "", "", fmt.Errorf("%w: invalid refresh token", entity.ErrUnauthorized)
	}
	if storedToken.ExpiresAt.Before(time.Now()) {
		_ = uc.tokenRepo.RevokeToken(ctx, storedToken.ID)
		return "", "", fmt.Errorf("%w: refresh token expired", entity.ErrUnauthorized)
	}

	newAccessToken, err := uc.jwtService.GenerateAccessToken(storedToken.UserID)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate new access token: %w", err)
	}
	newRefreshToken, newTokenID, err := uc.jwtService.GenerateRefreshToken(storedToken.UserID)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate new refresh token: %w", err)
	}
	now := time.Now()
	err = uc.tokenRepo.RotateToken(ctx, storedToken.ID, &entity.Token{
		ID:        newTokenID,
		UserID:    storedToken.UserID,
		TokenHash: uc.hasher.HashString(newRefreshToken),
		ExpiresAt: now.Add(uc.config.GetRefreshTokenExpiry()),
		CreatedAt: now,
	})
	if err != nil {
		uc.logger.Errorf("failed to rotate refresh token: %v", err)
		return "", "", err
	}
	return newAccessToken, newRefreshToken, nil
}

// Logout revokes the given refresh token.
func (uc *UserUsecase) Logout(ctx context.Context, refreshToken string) error {
	claims, err := uc.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		return fmt.Errorf("%w: invalid refresh token: %v", entity.ErrUnauthorized, err)
	}
	if err := uc.tokenRepo.RevokeToken(ctx, claims.TokenID); err != nil && !errors.Is(err, entity.ErrNotFound) {
		uc.logger.Errorf("failed to revoke refresh token %s: %v", claims.TokenID, err)
		return err
	}
	return nil
}

func (uc *UserUsecase) GetUserByID(ctx context.Context, userID uint64) (*entity.User, error) {
	return uc.userRepo.GetUserByID(ctx, userID)
}

// GetProfilePage returns the user's profile and one page of their articles.
// Pages past the end clamp to the last page.
func (uc *UserUsecase) GetProfilePage(ctx context.Context, userID uint64, page int) (*usecasecontract.ProfilePage, error) {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := uc.userRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	pagination := contract.Pagination{Page: page, PageSize: uc.config.GetProfilePageSize()}
	articles, total, err := uc.articleRepo.ListArticlesByAuthor(ctx, userID, pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles of user %d: %w", userID, err)
	}
	meta := contract.NewPaginationMeta(pagination, total)
	if meta.TotalPages > 0 && page > meta.TotalPages {
		pagination.Page = meta.TotalPages
		articles, total, err = uc.articleRepo.ListArticlesByAuthor(ctx, userID, pagination)
		if err != nil {
			return nil, fmt.Errorf("failed to list articles of user %d: %w", userID, err)
		}
		meta = contract.NewPaginationMeta(pagination, total)
	}

	return &usecasecontract.ProfilePage{
		User:     user,
		Profile:  profile,
		Articles: articles,
		Meta:     meta,
	}, nil
}

// UpdateProfile applies the non-nil fields of update to the caller's user and profile.
// A new avatar replaces the old one, which is deleted after the update commits.
func (uc *UserUsecase) UpdateProfile(ctx context.Context, userID uint64, update usecasecontract.ProfileUpdate, avatar *usecasecontract.AvatarUpload) (*entity.User, *entity.Profile, error) {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	profile, err := uc.userRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if update.FirstName != nil {
		user.FirstName = optional(*update.FirstName)
	}
	if update.LastName != nil {
		user.LastName = optional(*update.LastName)
	}
	if update.Email != nil && *update.Email != user.Email {
		if err := uc.validator.ValidateEmail(*update.Email); err != nil {
			return nil, nil, fmt.Errorf("%w: invalid email format", entity.ErrInvalidRequest)
		}
		if err := uc.ensureEmailFree(ctx, *update.Email, user.ID); err != nil {
			return nil, nil, err
		}
		user.Email = *update.Email
	}
	if update.About != nil {
		profile.About = strings.TrimSpace(*update.About)
	}
	if update.GithubURL != nil {
		profile.GithubURL = optional(*update.GithubURL)
	}
	if update.BirthDate != nil {
		if *update.BirthDate == "" {
			profile.BirthDate = nil
		} else {
			birthDate, err := time.Parse(birthDateLayout, *update.BirthDate)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: birth date must look like %s", entity.ErrInvalidRequest, birthDateLayout)
			}
			profile.BirthDate = &birthDate
		}
	}

	var previousAvatar *string
	var uploaded *entity.Avatar
	if avatar != nil {
		if uc.avatarStorage == nil {
			return nil, nil, fmt.Errorf("%w: avatar uploads are disabled", entity.ErrInvalidRequest)
		}
		if !strings.HasPrefix(avatar.ContentType, "image/") {
			return nil, nil, fmt.Errorf("%w: avatar must be an image", entity.ErrInvalidRequest)
		}
		uploaded, err = uc.avatarStorage.UploadAvatar(ctx, userID, avatar.Filename, avatar.ContentType, avatar.Content)
		if err != nil {
			uc.logger.Errorf("failed to upload avatar for user %d: %v", userID, err)
			return nil, nil, err
		}
		previousAvatar = profile.AvatarID
		profile.AvatarID = &uploaded.ID
	}

	now := time.Now()
	user.UpdatedAt = now
	profile.UpdatedAt = now
	if err := uc.userRepo.UpdateUser(ctx, user, profile); err != nil {
		if uploaded != nil {
			if delErr := uc.avatarStorage.DeleteAvatar(ctx, uploaded.ID); delErr != nil {
				uc.logger.Warnf("failed to clean up avatar %s: %v", uploaded.ID, delErr)
			}
		}
		return nil, nil, err
	}
	if previousAvatar != nil {
		if err := uc.avatarStorage.DeleteAvatar(ctx, *previousAvatar); err != nil {
			uc.logger.Warnf("failed to delete previous avatar %s: %v", *previousAvatar, err)
		}
	}
	return user, profile, nil
}

// ChangePassword verifies the old password, stores the new one and revokes every
// refresh token of the user.
func (uc *UserUsecase) ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword, confirm string) error {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := uc.hasher.ComparePasswordHash(oldPassword, user.PasswordHash); err != nil {
		return fmt.Errorf("%w: old password is incorrect", entity.ErrInvalidRequest)
	}
	if newPassword != confirm {
		return fmt.Errorf("%w: passwords do not match", entity.ErrInvalidRequest)
	}
	if err := uc.validator.ValidatePasswordStrength(newPassword); err != nil {
		return fmt.Errorf("%w: weak password: %v", entity.ErrInvalidRequest, err)
	}
	hashed, err := uc.hasher.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to process password: %w", err)
	}
	if err := uc.userRepo.UpdateUserPassword(ctx, userID, hashed); err != nil {
		return err
	}
	if err := uc.tokenRepo.RevokeAllTokensForUser(ctx, userID); err != nil {
		uc.logger.Warnf("failed to revoke refresh tokens of user %d: %v", userID, err)
	}
	return nil
}

// OpenAvatar streams a stored avatar.
func (uc *UserUsecase) OpenAvatar(ctx context.Context, avatarID string) (io.ReadCloser, *entity.Avatar, error) {
	if uc.avatarStorage == nil {
		return nil, nil, entity.ErrNotFound
	}
	return uc.avatarStorage.OpenAvatar(ctx, avatarID)
}

// ensureEmailFree fails with ErrConflict if another user than exceptID owns email.
func (uc *UserUsecase) ensureEmailFree(ctx context.Context, email string, exceptID uint64) error {
	existing, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil
		}
		uc.logger.Errorf("failed to check for existing user by email: %v", err)
		return err
	}
	if existing != nil && existing.ID != exceptID {
		return fmt.Errorf("%w: user with email %s", entity.ErrConflict, email)
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
