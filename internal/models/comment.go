package models

import (
	"time"
)

// Comment represents a comment on a post. Content is stored in mention-encoded
// form: resolvable @name tokens are rewritten to @id before insert.
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// MaxCommentLength is the maximum allowed comment body length in characters
const MaxCommentLength = 1000

// CommentDetail is a comment as returned on the post detail page, with the
// body already mention-decoded and the author joined in
type CommentDetail struct {
	ID        int64       `json:"id"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"createdAt"`
	User      UserSummary `json:"user"`
}

// CreatedComment is the response to a comment submission. Content carries the
// original name-form text the author typed, not the persisted encoded body.
type CreatedComment struct {
	ID        int64       `json:"id"`
	PostID    int64       `json:"postId"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"createdAt"`
	User      UserSummary `json:"user"`
}

// UserComment is one entry of the profile "comments" tab
type UserComment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	PostTitle string    `json:"postTitle"`
	PostSlug  string    `json:"postSlug"`
}
