package repository

import (
	"context"
	"time"

	"github.com/sportmeet/sportmeet/internal/models"
	"gorm.io/gorm"
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error)
	SearchUpcoming(ctx context.Context, after time.Time, limit int) ([]models.Event, error)
	FindByCreator(ctx context.Context, creatorID uint) ([]models.Event, error)
	FindJoinedByUser(ctx context.Context, userID uint) ([]models.Event, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).Preload("Sport").First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// FindByIDForUpdate acquires a row-level lock on the event within the given transaction.
func (r *eventRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
	var event models.Event
	if err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) SearchUpcoming(ctx context.Context, after time.Time, limit int) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Preload("Sport").
		Where("date > ?", after).
		Order("date ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindByCreator(ctx context.Context, creatorID uint) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("date ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindJoinedByUser(ctx context.Context, userID uint) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Joins("JOIN event_participants ON event_participants.event_id = events.id").
		Where("event_participants.user_id = ?", userID).
		Order("events.date ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
