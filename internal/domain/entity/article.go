package entity

import "time"

// Article is a published post. LikeCount is a denormalized copy of the size of
// its like-set and is only ever changed together with that set.
type Article struct {
	ID           uint64    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Preview      string    `json:"preview"`
	AuthorID     uint64    `json:"author_id"`
	Tags         []string  `json:"tags"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Comment is a reply left on an article.
type Comment struct {
	ID        uint64    `json:"id"`
	ArticleID uint64    `json:"article_id"`
	AuthorID  uint64    `json:"author_id"`
	Text      string    `json:"text"`
	LikeCount int64     `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
