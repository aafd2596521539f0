package gormsql

import (
	"context"

	"gorm.io/gorm"

	"github.com/mikiasgoitom/articleboard/internal/domain/contract"
	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
)

type UserRepository struct {
	db *gorm.DB
}

var _ contract.IUserRepository = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts the user and its profile in one transaction and sets user.ID.
func (r *UserRepository) CreateUser(ctx context.Context, user *entity.User, profile *entity.Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := &UserModel{
			Username:     user.Username,
			Email:        user.Email,
			PasswordHash: user.PasswordHash,
			FirstName:    user.FirstName,
			LastName:     user.LastName,
			IsActive:     user.IsActive,
			CreatedAt:    user.CreatedAt,
			UpdatedAt:    user.UpdatedAt,
		}
		if err := tx.Create(m).Error; err != nil {
			return translate(err, "create user")
		}
		profile.UserID = m.ID
		if err := tx.Create(fromProfileEntity(profile)).Error; err != nil {
			return translate(err, "create profile")
		}
		user.ID = m.ID
		return nil
	})
}

func (r *UserRepository) getBy(ctx context.Context, query string, arg interface{}) (*entity.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where(query, arg).Take(&m).Error; err != nil {
		return nil, translate(err, "get user")
	}
	return toUserEntity(&m), nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id uint64) (*entity.User, error) {
	return r.getBy(ctx, "id = ?", id)
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getBy(ctx, "username = ?", username)
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, "email = ?", email)
}

// UpdateUser writes the editable user columns and the full profile row.
func (r *UserRepository) UpdateUser(ctx context.Context, user *entity.User, profile *entity.Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&UserModel{ID: user.ID}).
			Select("email", "first_name", "last_name", "updated_at").
			Updates(&UserModel{
				Email:     user.Email,
				FirstName: user.FirstName,
				LastName:  user.LastName,
				UpdatedAt: user.UpdatedAt,
			})
		if res.Error != nil {
			return translate(res.Error, "update user")
		}
		profile.UserID = user.ID
		if err := tx.Save(fromProfileEntity(profile)).Error; err != nil {
			return translate(err, "update profile")
		}
		return nil
	})
}

func (r *UserRepository) UpdateUserPassword(ctx context.Context, id uint64, hashedPassword string) error {
	res := r.db.WithContext(ctx).Model(&UserModel{ID: id}).Update("password_hash", hashedPassword)
	if res.Error != nil {
		return translate(res.Error, "update password")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "update password")
	}
	return nil
}

func (r *UserRepository) GetProfile(ctx context.Context, userID uint64) (*entity.Profile, error) {
	var m ProfileModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&m).Error; err != nil {
		return nil, translate(err, "get profile")
	}
	return toProfileEntity(&m), nil
}
