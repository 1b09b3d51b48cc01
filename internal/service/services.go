package service

import (
	"context"
	"time"

	"github.com/blog-community-api/internal/config"
	"github.com/blog-community-api/internal/models"
	"github.com/blog-community-api/internal/repository"
	"github.com/rs/zerolog"
)

// AuthService defines the interface for registration, login and sessions
type AuthService interface {
	// Register creates a user with a hashed password plus a session, and
	// returns the signed cookie token.
	Register(ctx context.Context, email, password, displayName string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	// Authenticate resolves a cookie token into its user. Fails with
	// ErrNotAuthenticated on any invalid, expired or unknown session.
	Authenticate(ctx context.Context, token string) (*models.User, error)
	// RefreshSession authenticates, bumps last-accessed and returns a newly
	// signed token for the cookie.
	RefreshSession(ctx context.Context, token string) (*models.User, string, error)
	// Logout deletes the session row behind the token. Invalid or stale
	// tokens are not an error; the cookie gets cleared either way.
	Logout(ctx context.Context, token string) error
}

// PostService defines the interface for post operations
type PostService interface {
	List(ctx context.Context, viewer *models.User, adminMode bool) ([]*models.PostListItem, error)
	// GetBySlug returns the post with all comments mention-decoded for
	// rendering.
	GetBySlug(ctx context.Context, slug string) (*models.PostDetail, error)
	Create(ctx context.Context, actor *models.User, title, slug, content string, published bool) (*models.Post, error)
	Update(ctx context.Context, actor *models.User, id int64, title, slug, content string, published bool) error
	Delete(ctx context.Context, actor *models.User, id int64) error
	// ToggleLike flips the actor's like on the post and returns the new state
	ToggleLike(ctx context.Context, actor *models.User, postID int64) (bool, error)
	ListCreatedBy(ctx context.Context, userID int64) ([]*models.UserCreatedPost, error)
	ListLikedBy(ctx context.Context, userID int64) ([]*models.UserLikedPost, error)
}

// CommentService defines the interface for comment operations
type CommentService interface {
	// Create validates, mention-encodes and persists a comment. The returned
	// response carries the original name-form content, not the encoded body.
	Create(ctx context.Context, actor *models.User, postID int64, content string) (*models.CreatedComment, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.UserComment, error)
}

// EventService defines the interface for event operations
type EventService interface {
	Create(ctx context.Context, actor *models.User, title, description string, eventDate time.Time) (*models.Event, error)
	Update(ctx context.Context, actor *models.User, id int64, title, description string, eventDate time.Time) (*models.Event, error)
	Delete(ctx context.Context, actor *models.User, id int64) error
	Next(ctx context.Context) (*models.EventDetail, error)
	List(ctx context.Context) ([]*models.EventDetail, error)
}

// UserService defines the interface for user profile operations
type UserService interface {
	GetProfile(ctx context.Context, id int64) (*models.UserProfile, error)
	Search(ctx context.Context, query string) ([]models.UserSummary, error)
}

// Services holds all service interfaces
type Services struct {
	Auth    AuthService
	Post    PostService
	Comment CommentService
	Event   EventService
	User    UserService
}

// NewServices creates all services with their dependencies
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Auth:    NewAuthService(repos.User, repos.Session, cfg, log),
		Post:    NewPostService(repos.Post, repos.Comment, repos.Like, repos.User, log),
		Comment: NewCommentService(repos.Comment, repos.Post, repos.User, log),
		Event:   NewEventService(repos.Event, log),
		User:    NewUserService(repos.User, log),
	}
}
