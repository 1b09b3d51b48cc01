package repository

import (
	"context"

	"github.com/blog-community-api/internal/database"
	"github.com/blog-community-api/internal/models"
)

// likeRepo is the concrete implementation of LikeRepository
type likeRepo struct {
	db *database.DB
}

// NewLikeRepo creates a new like repository
func NewLikeRepo(db *database.DB) LikeRepository {
	return &likeRepo{db: db}
}

// Exists checks whether the user already likes the post
func (r *likeRepo) Exists(ctx context.Context, postID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM likes WHERE post_id = $1 AND user_id = $2)",
		postID, userID,
	).Scan(&exists)
	return exists, err
}

// Add records a like. The (post_id, user_id) unique constraint makes a
// concurrent duplicate a conflict rather than a double count.
func (r *likeRepo) Add(ctx context.Context, postID, userID int64) error {
	query := `
		INSERT INTO likes (post_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, postID, userID)
	return err
}

// Remove deletes the user's like on the post
func (r *likeRepo) Remove(ctx context.Context, postID, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM likes WHERE post_id = $1 AND user_id = $2",
		postID, userID,
	)
	return err
}

// ListLikedBy returns posts the user liked, most recently liked first
func (r *likeRepo) ListLikedBy(ctx context.Context, userID int64) ([]*models.UserLikedPost, error) {
	query := `
		SELECT p.id, p.title, p.slug, u.display_name, u.avatar_url, l.created_at
		FROM likes l
		INNER JOIN blog_posts p ON p.id = l.post_id
		INNER JOIN users u ON u.id = p.author_id
		WHERE l.user_id = $1
		ORDER BY l.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*models.UserLikedPost
	for rows.Next() {
		var item models.UserLikedPost
		err := rows.Scan(
			&item.ID, &item.Title, &item.Slug,
			&item.AuthorDisplayName, &item.AuthorAvatarURL, &item.LikedAt,
		)
		if err != nil {
			return nil, err
		}
		posts = append(posts, &item)
	}
	return posts, rows.Err()
}
