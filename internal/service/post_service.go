package service

import (
	"context"
	"fmt"

	"github.com/blog-community-api/internal/mention"
	"github.com/blog-community-api/internal/models"
	"github.com/blog-community-api/internal/repository"
	"github.com/blog-community-api/internal/validation"
	"github.com/rs/zerolog"
)

// postService is the concrete implementation of PostService
type postService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	userRepo    repository.UserRepository
	log         zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	userRepo repository.UserRepository,
	log zerolog.Logger,
) PostService {
	return &postService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		userRepo:    userRepo,
		log:         log.With().Str("service", "post").Logger(),
	}
}

// List returns the post feed. Unpublished posts appear only in admin mode
// for admin viewers.
func (s *postService) List(ctx context.Context, viewer *models.User, adminMode bool) ([]*models.PostListItem, error) {
	includeUnpublished := adminMode && viewer != nil && viewer.IsAdmin()

	var viewerID int64
	if viewer != nil {
		viewerID = viewer.ID
	}

	posts, err := s.postRepo.List(ctx, includeUnpublished, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	if posts == nil {
		posts = []*models.PostListItem{}
	}
	return posts, nil
}

// GetBySlug returns the post detail with every comment body mention-decoded.
// All @id candidates across the post's comments are collected in one pass and
// resolved with a single batched user lookup.
func (s *postService) GetBySlug(ctx context.Context, slug string) (*models.PostDetail, error) {
	detail, err := s.postRepo.GetDetailBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	if detail == nil {
		return nil, ErrNotFound
	}

	comments, err := s.commentRepo.ListByPost(ctx, detail.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}

	if err := s.decodeMentions(ctx, comments); err != nil {
		return nil, err
	}

	detail.Comments = make([]models.CommentDetail, 0, len(comments))
	for _, c := range comments {
		detail.Comments = append(detail.Comments, *c)
	}
	return detail, nil
}

// decodeMentions rewrites @id tokens in the given comments to markdown
// profile links showing the user's current display name. Unresolvable ids
// stay as literal text.
func (s *postService) decodeMentions(ctx context.Context, comments []*models.CommentDetail) error {
	bodies := make([]string, 0, len(comments))
	for _, c := range comments {
		bodies = append(bodies, c.Content)
	}

	ids := mention.ExtractIDs(bodies)
	if len(ids) == 0 {
		return nil
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to resolve mentioned users: %w", err)
	}

	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.DisplayName
	}

	for _, c := range comments {
		c.Content = mention.Decode(c.Content, names)
	}
	return nil
}

// Create adds a new post. Admin only; slug must be unique.
func (s *postService) Create(ctx context.Context, actor *models.User, title, slug, content string, published bool) (*models.Post, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := validation.ValidatePost(title, slug, content); err != nil {
		return nil, err
	}

	taken, err := s.postRepo.SlugExists(ctx, slug, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if taken {
		return nil, ErrSlugTaken
	}

	post := &models.Post{
		AuthorID:  actor.ID,
		Title:     title,
		Slug:      slug,
		Content:   content,
		Published: published,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.log.Info().Int64("post_id", post.ID).Str("slug", slug).Msg("Post created")
	return post, nil
}

// Update rewrites a post. Admin only; slug must not belong to another post.
func (s *postService) Update(ctx context.Context, actor *models.User, id int64, title, slug, content string, published bool) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if err := validation.ValidatePost(title, slug, content); err != nil {
		return err
	}

	taken, err := s.postRepo.SlugExists(ctx, slug, id)
	if err != nil {
		return fmt.Errorf("failed to check slug: %w", err)
	}
	if taken {
		return ErrSlugTaken
	}

	post := &models.Post{
		ID:        id,
		Title:     title,
		Slug:      slug,
		Content:   content,
		Published: published,
	}
	found, err := s.postRepo.Update(ctx, post)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if !found {
		return ErrNotFound
	}

	s.log.Info().Int64("post_id", id).Msg("Post updated")
	return nil
}

// Delete removes a post with its likes and comments. Admin only.
func (s *postService) Delete(ctx context.Context, actor *models.User, id int64) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	found, err := s.postRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if !found {
		return ErrNotFound
	}

	s.log.Info().Int64("post_id", id).Msg("Post deleted")
	return nil
}

// ToggleLike flips the actor's like on the post and returns the new state
func (s *postService) ToggleLike(ctx context.Context, actor *models.User, postID int64) (bool, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return false, fmt.Errorf("failed to check post: %w", err)
	}
	if !exists {
		return false, ErrNotFound
	}

	liked, err := s.likeRepo.Exists(ctx, postID, actor.ID)
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}

	if liked {
		if err := s.likeRepo.Remove(ctx, postID, actor.ID); err != nil {
			return false, fmt.Errorf("failed to remove like: %w", err)
		}
		return false, nil
	}

	if err := s.likeRepo.Add(ctx, postID, actor.ID); err != nil {
		return false, fmt.Errorf("failed to add like: %w", err)
	}
	return true, nil
}

// ListCreatedBy returns the user's posts with engagement counts
func (s *postService) ListCreatedBy(ctx context.Context, userID int64) ([]*models.UserCreatedPost, error) {
	posts, err := s.postRepo.ListCreatedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list created posts: %w", err)
	}
	if posts == nil {
		posts = []*models.UserCreatedPost{}
	}
	return posts, nil
}

// ListLikedBy returns the posts the user liked
func (s *postService) ListLikedBy(ctx context.Context, userID int64) ([]*models.UserLikedPost, error) {
	posts, err := s.likeRepo.ListLikedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked posts: %w", err)
	}
	if posts == nil {
		posts = []*models.UserLikedPost{}
	}
	return posts, nil
}
