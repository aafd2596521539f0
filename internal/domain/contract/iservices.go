package contract

// IHasher hashes passwords and opaque tokens.
type IHasher interface {
	HashPassword(password string) (string, error)
	ComparePasswordHash(password, hashedPassword string) error
	HashString(s string) string
	CheckHash(s, hash string) bool
}

type IUUIDGenerator interface {
	NewUUID() string
}

// IPreviewer derives a short plain-text preview from article markup.
type IPreviewer interface {
	Preview(content string) string
}
