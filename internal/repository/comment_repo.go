package repository

import (
	"context"

	"github.com/blog-community-api/internal/database"
	"github.com/blog-community-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// Create inserts a new comment and fills the generated id and timestamps.
// Content is expected to be mention-encoded already.
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (post_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		comment.PostID, comment.UserID, comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
}

// ListByPost returns the post's comments ascending by creation time with the
// author joined in. Bodies are returned as stored.
func (r *commentRepo) ListByPost(ctx context.Context, postID int64) ([]*models.CommentDetail, error) {
	query := `
		SELECT c.id, c.content, c.created_at, u.id, u.display_name, u.avatar_url
		FROM comments c
		INNER JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.CommentDetail
	for rows.Next() {
		var c models.CommentDetail
		err := rows.Scan(
			&c.ID, &c.Content, &c.CreatedAt,
			&c.User.ID, &c.User.DisplayName, &c.User.AvatarURL,
		)
		if err != nil {
			return nil, err
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

// ListByUser returns the user's comments newest-first with the parent post
// title and slug joined in
func (r *commentRepo) ListByUser(ctx context.Context, userID int64) ([]*models.UserComment, error) {
	query := `
		SELECT c.id, c.content, c.created_at, p.title, p.slug
		FROM comments c
		INNER JOIN blog_posts p ON p.id = c.post_id
		WHERE c.user_id = $1
		ORDER BY c.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.UserComment
	for rows.Next() {
		var c models.UserComment
		if err := rows.Scan(&c.ID, &c.Content, &c.CreatedAt, &c.PostTitle, &c.PostSlug); err != nil {
			return nil, err
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

// Count returns the number of comments on a post
func (r *commentRepo) Count(ctx context.Context, postID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments WHERE post_id = $1", postID).Scan(&count)
	return count, err
}
