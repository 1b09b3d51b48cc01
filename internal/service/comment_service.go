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

// commentService is the concrete implementation of CommentService
type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	log         zerolog.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	log zerolog.Logger,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		log:         log.With().Str("service", "comment").Logger(),
	}
}

// Create validates the submission, encodes mentions and persists the comment.
// The persisted body is id-normalized; the response echoes the original text
// so the author immediately sees names without a decode round-trip.
func (s *commentService) Create(ctx context.Context, actor *models.User, postID int64, content string) (*models.CreatedComment, error) {
	if err := validation.ValidateComment(postID, content); err != nil {
		return nil, err
	}

	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to check post: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	encoded, mentioned, err := s.encodeMentions(ctx, content)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  actor.ID,
		Content: encoded,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.log.Info().
		Int64("comment_id", comment.ID).
		Int64("post_id", postID).
		Int64("user_id", actor.ID).
		Int("mentions", mentioned).
		Msg("Comment created")

	return &models.CreatedComment{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Content:   content,
		CreatedAt: comment.CreatedAt,
		User:      actor.Summary(),
	}, nil
}

// encodeMentions resolves @name tokens to @id form with one batched lookup.
// Names that do not resolve stay as literal text; that is never an error.
func (s *commentService) encodeMentions(ctx context.Context, content string) (string, int, error) {
	names := mention.ExtractNames(content)
	if len(names) == 0 {
		return content, 0, nil
	}

	users, err := s.userRepo.GetByDisplayNames(ctx, names)
	if err != nil {
		return "", 0, fmt.Errorf("failed to resolve mentions: %w", err)
	}

	return mention.Encode(content, users), len(users), nil
}

// ListByUser returns the user's comments with parent post info
func (s *commentService) ListByUser(ctx context.Context, userID int64) ([]*models.UserComment, error) {
	comments, err := s.commentRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	if comments == nil {
		comments = []*models.UserComment{}
	}
	return comments, nil
}
