package entity

import (
	"time"
)

// User represents a registered user in the system
type User struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	FirstName    *string   `json:"firstname,omitempty"`
	LastName     *string   `json:"lastname,omitempty"`
}

// Profile holds the editable, non-credential part of a user's account.
// Every user has exactly one profile, created together with the user.
type Profile struct {
	UserID    uint64     `json:"user_id"`
	About     string     `json:"about"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	GithubURL *string    `json:"github_url,omitempty"`
	AvatarID  *string    `json:"avatar_id,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Avatar describes a stored profile picture.
type Avatar struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	OwnerID     uint64    `json:"owner_id"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
