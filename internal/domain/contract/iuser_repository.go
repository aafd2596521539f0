package contract

import (
	"context"

	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
)

type IUserRepository interface {
	// CreateUser stores the user and its (empty) profile together; user.ID is set on success.
	CreateUser(ctx context.Context, user *entity.User, profile *entity.Profile) error
	GetUserByID(ctx context.Context, id uint64) (*entity.User, error)
	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	// UpdateUser persists the editable user fields and the profile in one transaction.
	UpdateUser(ctx context.Context, user *entity.User, profile *entity.Profile) error
	// UpdateUserPassword updates user's password by ID with the provided hashed password.
	UpdateUserPassword(ctx context.Context, id uint64, hashedPassword string) error
	GetProfile(ctx context.Context, userID uint64) (*entity.Profile, error)
}
