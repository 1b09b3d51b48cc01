package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/blog-community-api/internal/database"
	"github.com/blog-community-api/internal/models"
)

// postRepo is the concrete implementation of PostRepository
type postRepo struct {
	db *database.DB
}

// NewPostRepo creates a new post repository
func NewPostRepo(db *database.DB) PostRepository {
	return &postRepo{db: db}
}

// Create inserts a new post and fills the generated id and timestamps
func (r *postRepo) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO blog_posts (author_id, title, slug, content, published)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		post.AuthorID, post.Title, post.Slug, post.Content, post.Published,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
}

// Update rewrites title, slug, content and published. Returns false when the
// post does not exist.
func (r *postRepo) Update(ctx context.Context, post *models.Post) (bool, error) {
	query := `
		UPDATE blog_posts
		SET title = $1, slug = $2, content = $3, published = $4, updated_at = $5
		WHERE id = $6
	`
	res, err := r.db.ExecContext(ctx, query,
		post.Title, post.Slug, post.Content, post.Published, time.Now(), post.ID,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

// Delete removes the post and its likes and comments in one transaction
func (r *postRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM likes WHERE post_id = $1`, id); err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE post_id = $1`, id); err != nil {
		return false, err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	return true, tx.Commit()
}

// Exists checks if a post with the given ID exists
func (r *postRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM blog_posts WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

// SlugExists checks if the slug is taken by a post other than excludeID
func (r *postRepo) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM blog_posts WHERE slug = $1 AND id != $2)",
		slug, excludeID,
	).Scan(&exists)
	return exists, err
}

// List returns posts newest-first with author, counts, preview and the
// viewer's like state. viewerID 0 means anonymous.
func (r *postRepo) List(ctx context.Context, includeUnpublished bool, viewerID int64) ([]*models.PostListItem, error) {
	query := `
		SELECT
			p.id, p.title, p.slug, p.content,
			SUBSTRING(p.content FROM 1 FOR $1),
			p.created_at, p.published,
			u.id, u.display_name, u.avatar_url,
			(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id),
			(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id),
			EXISTS(SELECT 1 FROM likes l WHERE l.post_id = p.id AND l.user_id = $2)
		FROM blog_posts p
		INNER JOIN users u ON u.id = p.author_id
		WHERE p.published = TRUE OR $3
		ORDER BY p.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, models.PreviewLength, viewerID, includeUnpublished)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*models.PostListItem
	for rows.Next() {
		var item models.PostListItem
		err := rows.Scan(
			&item.ID, &item.Title, &item.Slug, &item.Content,
			&item.ContentPreview, &item.CreatedAt, &item.Published,
			&item.Author.ID, &item.Author.DisplayName, &item.Author.AvatarURL,
			&item.LikeCount, &item.CommentCount, &item.IsLiked,
		)
		if err != nil {
			return nil, err
		}
		posts = append(posts, &item)
	}
	return posts, rows.Err()
}

// GetDetailBySlug returns the post with author and like count joined, or nil
// when not found. Comments are fetched separately.
func (r *postRepo) GetDetailBySlug(ctx context.Context, slug string) (*models.PostDetail, error) {
	query := `
		SELECT
			p.id, p.title, p.slug, p.content, p.created_at, p.published,
			u.id, u.display_name, u.avatar_url,
			(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id)
		FROM blog_posts p
		INNER JOIN users u ON u.id = p.author_id
		WHERE p.slug = $1
	`
	var detail models.PostDetail
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&detail.ID, &detail.Title, &detail.Slug, &detail.Content,
		&detail.CreatedAt, &detail.Published,
		&detail.Author.ID, &detail.Author.DisplayName, &detail.Author.AvatarURL,
		&detail.LikeCount,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListCreatedBy returns the user's posts newest-first with engagement counts
func (r *postRepo) ListCreatedBy(ctx context.Context, userID int64) ([]*models.UserCreatedPost, error) {
	query := `
		SELECT
			p.id, p.title, p.slug, p.published, p.created_at,
			(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id),
			(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id)
		FROM blog_posts p
		WHERE p.author_id = $1
		ORDER BY p.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*models.UserCreatedPost
	for rows.Next() {
		var item models.UserCreatedPost
		err := rows.Scan(
			&item.ID, &item.Title, &item.Slug, &item.Published, &item.CreatedAt,
			&item.LikeCount, &item.CommentCount,
		)
		if err != nil {
			return nil, err
		}
		posts = append(posts, &item)
	}
	return posts, rows.Err()
}
