package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/blog-community-api/internal/database"
	"github.com/blog-community-api/internal/models"
)

// eventRepo is the concrete implementation of EventRepository
type eventRepo struct {
	db *database.DB
}

// NewEventRepo creates a new event repository
func NewEventRepo(db *database.DB) EventRepository {
	return &eventRepo{db: db}
}

// Create inserts a new event and fills the generated id and timestamps
func (r *eventRepo) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (created_by, title, description, event_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		event.CreatedBy, event.Title, event.Description, event.EventDate,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

// Update rewrites an event and refreshes its timestamps on the model.
// Returns false when it does not exist.
func (r *eventRepo) Update(ctx context.Context, event *models.Event) (bool, error) {
	query := `
		UPDATE events
		SET title = $2, description = $3, event_date = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING created_by, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		event.ID, event.Title, event.Description, event.EventDate,
	).Scan(&event.CreatedBy, &event.CreatedAt, &event.UpdatedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes an event. Returns false when it does not exist.
func (r *eventRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

const eventDetailQuery = `
	SELECT e.id, e.title, e.description, e.event_date, e.created_at,
	       u.display_name, u.avatar_url
	FROM events e
	INNER JOIN users u ON u.id = e.created_by
`

// Next returns the soonest upcoming event, or nil when none is scheduled
func (r *eventRepo) Next(ctx context.Context, now time.Time) (*models.EventDetail, error) {
	query := eventDetailQuery + `
		WHERE e.event_date > $1
		ORDER BY e.event_date ASC
		LIMIT 1
	`
	var detail models.EventDetail
	err := r.db.QueryRowContext(ctx, query, now).Scan(
		&detail.ID, &detail.Title, &detail.Description, &detail.EventDate,
		&detail.CreatedAt, &detail.CreatorDisplayName, &detail.CreatorAvatarURL,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// List returns all events soonest-first with creators joined
func (r *eventRepo) List(ctx context.Context) ([]*models.EventDetail, error) {
	query := eventDetailQuery + ` ORDER BY e.event_date ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.EventDetail
	for rows.Next() {
		var detail models.EventDetail
		err := rows.Scan(
			&detail.ID, &detail.Title, &detail.Description, &detail.EventDate,
			&detail.CreatedAt, &detail.CreatorDisplayName, &detail.CreatorAvatarURL,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, &detail)
	}
	return events, rows.Err()
}
