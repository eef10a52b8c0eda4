package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sportmeet/sportmeet/internal/models"
	"github.com/sportmeet/sportmeet/internal/repository"
)

// CreateEventInput is the raw output of the event-creation flow. Zero or
// negative MaxParticipants and Fee mean "unlimited" and "free" and are
// normalized to absent on the stored event.
type CreateEventInput struct {
	Title           string
	Date            time.Time
	Location        string
	Latitude        *float64
	Longitude       *float64
	SportID         *uint
	MaxParticipants int
	Fee             float64
	Note            string
	CreatorID       uint
}

type EventService interface {
	Create(ctx context.Context, in CreateEventInput) (*models.Event, error)
	Get(ctx context.Context, id uint) (*models.Event, error)
	SearchUpcoming(ctx context.Context, limit int) ([]models.Event, error)
	CreatedBy(ctx context.Context, userID uint) ([]models.Event, error)
	JoinedBy(ctx context.Context, userID uint) ([]models.Event, error)
}

type eventService struct {
	repo repository.EventRepository
}

func NewEventService(repo repository.EventRepository) EventService {
	return &eventService{repo: repo}
}

func (s *eventService) Create(ctx context.Context, in CreateEventInput) (*models.Event, error) {
	event := &models.Event{
		Title:     in.Title,
		Date:      in.Date,
		Location:  in.Location,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		SportID:   in.SportID,
		Note:      in.Note,
		CreatorID: in.CreatorID,
	}
	if in.MaxParticipants > 0 {
		event.MaxParticipants = &in.MaxParticipants
	}
	if in.Fee > 0 {
		event.Fee = &in.Fee
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) Get(ctx context.Context, id uint) (*models.Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *eventService) SearchUpcoming(ctx context.Context, limit int) ([]models.Event, error) {
	return s.repo.SearchUpcoming(ctx, time.Now(), limit)
}

func (s *eventService) CreatedBy(ctx context.Context, userID uint) ([]models.Event, error) {
	return s.repo.FindByCreator(ctx, userID)
}

func (s *eventService) JoinedBy(ctx context.Context, userID uint) ([]models.Event, error) {
	return s.repo.FindJoinedByUser(ctx, userID)
}
