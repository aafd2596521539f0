package entity

import "time"

// LikeableKind names the entity types that carry a like-set.
type LikeableKind string

const (
	LikeableArticle LikeableKind = "article"
	LikeableComment LikeableKind = "comment"
)

// IsValid reports whether k is one of the known likeable kinds.
func (k LikeableKind) IsValid() bool {
	switch k {
	case LikeableArticle, LikeableComment:
		return true
	}
	return false
}

// Likeable is the slice of an article or comment that the toggle operates on.
type Likeable struct {
	Kind      LikeableKind
	ID        uint64
	LikeCount int64
}

// ReactionEvent is emitted after a toggle has been committed.
type ReactionEvent struct {
	Kind      LikeableKind `json:"kind"`
	EntityID  uint64       `json:"entity_id"`
	UserID    uint64       `json:"user_id"`
	Liked     bool         `json:"liked"`
	LikeCount int64        `json:"like_count"`
	At        time.Time    `json:"at"`
}
