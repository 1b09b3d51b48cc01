package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/blog-community-api/internal/database"
	"github.com/blog-community-api/internal/models"
)

// sessionRepo is the concrete implementation of SessionRepository
type sessionRepo struct {
	db *database.DB
}

// NewSessionRepo creates a new session repository
func NewSessionRepo(db *database.DB) SessionRepository {
	return &sessionRepo{db: db}
}

// Create inserts a new session row
func (r *sessionRepo) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, created_at, last_accessed, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		session.ID, session.UserID, session.CreatedAt, session.LastAccessed, session.ExpiresAt,
	)
	return err
}

// GetByID retrieves a session by id, nil when absent
func (r *sessionRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	query := `SELECT id, user_id, created_at, last_accessed, expires_at FROM sessions WHERE id = $1`

	var session models.Session
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID, &session.UserID, &session.CreatedAt,
		&session.LastAccessed, &session.ExpiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Touch updates the session's last-accessed time
func (r *sessionRepo) Touch(ctx context.Context, id string, lastAccessed time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE sessions SET last_accessed = $1 WHERE id = $2",
		lastAccessed, id,
	)
	return err
}

// Delete removes a session
func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = $1", id)
	return err
}

// DeleteExpired removes all sessions past their expiry
func (r *sessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < $1", now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
