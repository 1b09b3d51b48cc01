package service

import (
	"context"
	"fmt"
	"time"

	"github.com/blog-community-api/internal/models"
	"github.com/blog-community-api/internal/repository"
	"github.com/blog-community-api/internal/validation"
	"github.com/rs/zerolog"
)

// eventService is the concrete implementation of EventService
type eventService struct {
	eventRepo repository.EventRepository
	log       zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repository.EventRepository, log zerolog.Logger) EventService {
	return &eventService{
		eventRepo: eventRepo,
		log:       log.With().Str("service", "event").Logger(),
	}
}

// Create adds an event. Admin only; the date must be in the future.
func (s *eventService) Create(ctx context.Context, actor *models.User, title, description string, eventDate time.Time) (*models.Event, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := validation.ValidateEvent(title, description, eventDate, time.Now()); err != nil {
		return nil, err
	}

	event := &models.Event{
		CreatedBy:   actor.ID,
		Title:       title,
		Description: description,
		EventDate:   eventDate,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.log.Info().Int64("event_id", event.ID).Time("event_date", eventDate).Msg("Event created")
	return event, nil
}

// Update rewrites an event. Admin only; validated like Create.
func (s *eventService) Update(ctx context.Context, actor *models.User, id int64, title, description string, eventDate time.Time) (*models.Event, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := validation.ValidateEvent(title, description, eventDate, time.Now()); err != nil {
		return nil, err
	}

	event := &models.Event{
		ID:          id,
		Title:       title,
		Description: description,
		EventDate:   eventDate,
	}
	found, err := s.eventRepo.Update(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	if !found {
		return nil, ErrNotFound
	}

	s.log.Info().Int64("event_id", id).Time("event_date", eventDate).Msg("Event updated")
	return event, nil
}

// Delete removes an event. Admin only.
func (s *eventService) Delete(ctx context.Context, actor *models.User, id int64) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	found, err := s.eventRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if !found {
		return ErrNotFound
	}

	s.log.Info().Int64("event_id", id).Msg("Event deleted")
	return nil
}

// Next returns the soonest upcoming event, nil when none is scheduled
func (s *eventService) Next(ctx context.Context) (*models.EventDetail, error) {
	event, err := s.eventRepo.Next(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch next event: %w", err)
	}
	return event, nil
}

// List returns all events soonest-first
func (s *eventService) List(ctx context.Context) ([]*models.EventDetail, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	if events == nil {
		events = []*models.EventDetail{}
	}
	return events, nil
}
