package models

import (
	"time"
)

// Post represents a blog post row
type Post struct {
	ID        int64     `json:"id" db:"id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	Title     string    `json:"title" db:"title"`
	Slug      string    `json:"slug" db:"slug"`
	Content   string    `json:"content" db:"content"`
	Published bool      `json:"published" db:"published"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// PreviewLength is how many characters of content the post list carries
const PreviewLength = 200

// PostListItem is one entry of the post list response
type PostListItem struct {
	ID             int64       `json:"id"`
	Title          string      `json:"title"`
	Slug           string      `json:"slug"`
	Content        string      `json:"content"`
	ContentPreview string      `json:"contentPreview"`
	CreatedAt      time.Time   `json:"createdAt"`
	Published      bool        `json:"published"`
	Author         UserSummary `json:"author"`
	LikeCount      int         `json:"likeCount"`
	CommentCount   int         `json:"commentCount"`
	IsLiked        bool        `json:"isLiked"`
}

// PostDetail is the full post response including decoded comments
type PostDetail struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	Slug      string          `json:"slug"`
	Content   string          `json:"content"`
	CreatedAt time.Time       `json:"createdAt"`
	Published bool            `json:"published"`
	Author    UserSummary     `json:"author"`
	LikeCount int             `json:"likeCount"`
	Comments  []CommentDetail `json:"comments"`
}

// UserCreatedPost is one entry of the profile "created posts" tab
type UserCreatedPost struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Published    bool      `json:"published"`
	CreatedAt    time.Time `json:"createdAt"`
	LikeCount    int       `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
}

// UserLikedPost is one entry of the profile "liked posts" tab
type UserLikedPost struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title"`
	Slug              string    `json:"slug"`
	AuthorDisplayName string    `json:"authorDisplayName"`
	AuthorAvatarURL   *string   `json:"authorAvatarUrl"`
	LikedAt           time.Time `json:"likedAt"`
}
