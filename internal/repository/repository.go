package repository

import (
	"context"
	"time"

	"github.com/blog-community-api/internal/database"
	"github.com/blog-community-api/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// GetByIDs batch-resolves users for mention decoding; missing ids are
	// simply absent from the result.
	GetByIDs(ctx context.Context, ids []int64) ([]*models.User, error)
	// GetByDisplayNames batch-resolves users whose lower-cased display name
	// is in names. Callers pass lower-cased candidates.
	GetByDisplayNames(ctx context.Context, names []string) ([]*models.User, error)
	Search(ctx context.Context, query string, limit int) ([]*models.User, error)
}

// PostRepository defines the interface for blog post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) (bool, error)
	// Delete removes the post along with its likes and comments in one
	// transaction. Returns false when no such post exists.
	Delete(ctx context.Context, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	List(ctx context.Context, includeUnpublished bool, viewerID int64) ([]*models.PostListItem, error)
	// GetDetailBySlug returns the post with author and like count joined,
	// comments not included. Nil when not found.
	GetDetailBySlug(ctx context.Context, slug string) (*models.PostDetail, error)
	ListCreatedBy(ctx context.Context, userID int64) ([]*models.UserCreatedPost, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	// ListByPost returns the post's comments ascending by creation time with
	// the author joined. Bodies are returned as stored (mention-encoded).
	ListByPost(ctx context.Context, postID int64) ([]*models.CommentDetail, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.UserComment, error)
	Count(ctx context.Context, postID int64) (int, error)
}

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	Exists(ctx context.Context, postID, userID int64) (bool, error)
	Add(ctx context.Context, postID, userID int64) error
	Remove(ctx context.Context, postID, userID int64) error
	ListLikedBy(ctx context.Context, userID int64) ([]*models.UserLikedPost, error)
}

// EventRepository defines the interface for event data operations
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	// Update rewrites title, description and date. Returns false when no
	// such event exists.
	Update(ctx context.Context, event *models.Event) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	// Next returns the soonest upcoming event with its creator joined, or
	// nil when none is scheduled.
	Next(ctx context.Context, now time.Time) (*models.EventDetail, error)
	List(ctx context.Context) ([]*models.EventDetail, error)
}

// SessionRepository defines the interface for session data operations
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	Touch(ctx context.Context, id string, lastAccessed time.Time) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User    UserRepository
	Post    PostRepository
	Comment CommentRepository
	Like    LikeRepository
	Event   EventRepository
	Session SessionRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepo(db),
		Post:    NewPostRepo(db),
		Comment: NewCommentRepo(db),
		Like:    NewLikeRepo(db),
		Event:   NewEventRepo(db),
		Session: NewSessionRepo(db),
	}
}
