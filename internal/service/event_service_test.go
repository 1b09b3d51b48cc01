package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blog-community-api/internal/mocks"
	"github.com/blog-community-api/internal/models"
	"github.com/blog-community-api/internal/validation"
	"github.com/rs/zerolog"
)

func newEventServiceForTest() (EventService, *mocks.MockEventRepository) {
	eventRepo := mocks.NewMockEventRepository()
	svc := NewEventService(eventRepo, zerolog.Nop())
	return svc, eventRepo
}

func TestCreateEventRequiresAdmin(t *testing.T) {
	svc, _ := newEventServiceForTest()

	user := &models.User{ID: 1, Role: "user"}
	_, err := svc.Create(context.Background(), user, "Meetup", "monthly", time.Now().Add(time.Hour))
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("Create() error = %v, want ErrForbidden", err)
	}
}

func TestCreateEventRejectsPastDate(t *testing.T) {
	svc, _ := newEventServiceForTest()

	admin := &models.User{ID: 1, Role: "admin"}
	_, err := svc.Create(context.Background(), admin, "Meetup", "monthly", time.Now().Add(-time.Hour))
	var verrs validation.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Create() error = %v, want validation errors", err)
	}
}

func TestUpdateEvent(t *testing.T) {
	svc, eventRepo := newEventServiceForTest()

	admin := &models.User{ID: 1, Role: "admin"}
	created, err := svc.Create(context.Background(), admin, "Meetup", "monthly", time.Now().Add(24*time.Hour))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	newDate := time.Now().Add(48 * time.Hour)
	updated, err := svc.Update(context.Background(), admin, created.ID, "Meetup v2", "rescheduled", newDate)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("updated id = %d, want %d", updated.ID, created.ID)
	}
	if updated.Title != "Meetup v2" {
		t.Errorf("title = %q, want %q", updated.Title, "Meetup v2")
	}

	stored := eventRepo.Events[created.ID]
	if stored.Title != "Meetup v2" || stored.Description != "rescheduled" {
		t.Errorf("stored event not rewritten: %+v", stored)
	}
	if !stored.EventDate.Equal(newDate) {
		t.Errorf("stored date = %v, want %v", stored.EventDate, newDate)
	}
}

func TestUpdateEventRequiresAdmin(t *testing.T) {
	svc, _ := newEventServiceForTest()

	user := &models.User{ID: 1, Role: "user"}
	_, err := svc.Update(context.Background(), user, 1, "Meetup", "monthly", time.Now().Add(time.Hour))
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("Update() error = %v, want ErrForbidden", err)
	}
}

func TestUpdateEventNotFound(t *testing.T) {
	svc, _ := newEventServiceForTest()

	admin := &models.User{ID: 1, Role: "admin"}
	_, err := svc.Update(context.Background(), admin, 99, "Meetup", "monthly", time.Now().Add(time.Hour))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteEvent(t *testing.T) {
	svc, eventRepo := newEventServiceForTest()

	admin := &models.User{ID: 1, Role: "admin"}
	created, err := svc.Create(context.Background(), admin, "Meetup", "monthly", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	user := &models.User{ID: 2, Role: "user"}
	if err := svc.Delete(context.Background(), user, created.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("Delete() error = %v, want ErrForbidden", err)
	}

	if err := svc.Delete(context.Background(), admin, created.ID); err != nil {
		t.Fatalf("Delete() as admin error = %v", err)
	}
	if _, ok := eventRepo.Events[created.ID]; ok {
		t.Error("event still present after delete")
	}

	if err := svc.Delete(context.Background(), admin, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete() again error = %v, want ErrNotFound", err)
	}
}
