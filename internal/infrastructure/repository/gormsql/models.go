// Package gormsql implements the relational repositories on top of gorm and MySQL.
package gormsql

import (
	"time"

	"gorm.io/gorm"

	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
)

type UserModel struct {
	ID           uint64    `gorm:"primaryKey;column:id;autoIncrement"`
	Username     string    `gorm:"column:username;size:150;uniqueIndex;not null"`
	Email        string    `gorm:"column:email;size:254;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null"`
	FirstName    *string   `gorm:"column:first_name;size:150"`
	LastName     *string   `gorm:"column:last_name;size:150"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (UserModel) TableName() string { return "users" }

type ProfileModel struct {
	UserID    uint64     `gorm:"primaryKey;column:user_id;autoIncrement:false"`
	About     string     `gorm:"column:about;type:text"`
	BirthDate *time.Time `gorm:"column:birth_date;type:date"`
	GithubURL *string    `gorm:"column:github_url;size:255"`
	AvatarID  *string    `gorm:"column:avatar_id;size:64"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (ProfileModel) TableName() string { return "profiles" }

type TagModel struct {
	ID   uint64 `gorm:"primaryKey;column:id;autoIncrement"`
	Name string `gorm:"column:name;size:64;uniqueIndex;not null"`
}

func (TagModel) TableName() string { return "tags" }

type ArticleModel struct {
	ID           uint64     `gorm:"primaryKey;column:id;autoIncrement"`
	Title        string     `gorm:"column:title;size:255;not null"`
	Content      string     `gorm:"column:content;type:longtext;not null"`
	Preview      string     `gorm:"column:preview;size:1024"`
	AuthorID     uint64     `gorm:"column:author_id;index;not null"`
	LikeCount    int64      `gorm:"column:like_count;not null;default:0"`
	CommentCount int64      `gorm:"column:comment_count;not null;default:0"`
	Tags         []TagModel `gorm:"many2many:article_tags;joinForeignKey:ArticleID;joinReferences:TagID"`
	CreatedAt    time.Time  `gorm:"column:created_at;index"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (ArticleModel) TableName() string { return "articles" }

type CommentModel struct {
	ID        uint64    `gorm:"primaryKey;column:id;autoIncrement"`
	ArticleID uint64    `gorm:"column:article_id;index;not null"`
	AuthorID  uint64    `gorm:"column:author_id;not null"`
	Text      string    `gorm:"column:text;type:text;not null"`
	LikeCount int64     `gorm:"column:like_count;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (CommentModel) TableName() string { return "comments" }

// ArticleLikeModel is one member of an article's like-set. The composite key
// makes a second like by the same user impossible.
type ArticleLikeModel struct {
	ArticleID uint64    `gorm:"primaryKey;column:article_id;autoIncrement:false"`
	UserID    uint64    `gorm:"primaryKey;column:user_id;autoIncrement:false"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (ArticleLikeModel) TableName() string { return "article_likes" }

type CommentLikeModel struct {
	CommentID uint64    `gorm:"primaryKey;column:comment_id;autoIncrement:false"`
	UserID    uint64    `gorm:"primaryKey;column:user_id;autoIncrement:false"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (CommentLikeModel) TableName() string { return "comment_likes" }

type RefreshTokenModel struct {
	ID        string    `gorm:"primaryKey;column:id;size:64"`
	UserID    uint64    `gorm:"column:user_id;index;not null"`
	TokenHash string    `gorm:"column:token_hash;size:128;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	Revoked   bool      `gorm:"column:revoked;not null;default:false"`
}

func (RefreshTokenModel) TableName() string { return "refresh_tokens" }

// AutoMigrate creates or updates every table the repositories use.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&ProfileModel{},
		&TagModel{},
		&ArticleModel{},
		&CommentModel{},
		&ArticleLikeModel{},
		&CommentLikeModel{},
		&RefreshTokenModel{},
	)
}

func toUserEntity(m *UserModel) *entity.User {
	return &entity.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toProfileEntity(m *ProfileModel) *entity.Profile {
	return &entity.Profile{
		UserID:    m.UserID,
		About:     m.About,
		BirthDate: m.BirthDate,
		GithubURL: m.GithubURL,
		AvatarID:  m.AvatarID,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromProfileEntity(p *entity.Profile) *ProfileModel {
	return &ProfileModel{
		UserID:    p.UserID,
		About:     p.About,
		BirthDate: p.BirthDate,
		GithubURL: p.GithubURL,
		AvatarID:  p.AvatarID,
		UpdatedAt: p.UpdatedAt,
	}
}

func toArticleEntity(m *ArticleModel) *entity.Article {
	tags := make([]string, 0, len(m.Tags))
	for _, t := range m.Tags {
		tags = append(tags, t.Name)
	}
	return &entity.Article{
		ID:           m.ID,
		Title:        m.Title,
		Content:      m.Content,
		Preview:      m.Preview,
		AuthorID:     m.AuthorID,
		Tags:         tags,
		LikeCount:    m.LikeCount,
		CommentCount: m.CommentCount,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toCommentEntity(m *CommentModel) *entity.Comment {
	return &entity.Comment{
		ID:        m.ID,
		ArticleID: m.ArticleID,
		AuthorID:  m.AuthorID,
		Text:      m.Text,
		LikeCount: m.LikeCount,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toTokenEntity(m *RefreshTokenModel) *entity.Token {
	return &entity.Token{
		ID:        m.ID,
		UserID:    m.UserID,
		TokenHash: m.TokenHash,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
		Revoked:   m.Revoked,
	}
}
