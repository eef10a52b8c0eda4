package repository

import (
	"context"

	"github.com/sportmeet/sportmeet/internal/models"
	"gorm.io/gorm"
)

type ParticipantRepository interface {
	Create(ctx context.Context, tx *gorm.DB, p *models.EventParticipant) error
	FindByEventAndUser(ctx context.Context, tx *gorm.DB, eventID, userID uint) (*models.EventParticipant, error)
	FindByEvent(ctx context.Context, eventID uint) ([]models.EventParticipant, error)
	Delete(ctx context.Context, eventID, userID uint) error
}

type participantRepository struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) Create(ctx context.Context, tx *gorm.DB, p *models.EventParticipant) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *participantRepository) FindByEventAndUser(ctx context.Context, tx *gorm.DB, eventID, userID uint) (*models.EventParticipant, error) {
	var p models.EventParticipant
	err := tx.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *participantRepository) FindByEvent(ctx context.Context, eventID uint) ([]models.EventParticipant, error) {
	var participants []models.EventParticipant
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("joined_at ASC").
		Find(&participants).Error
	if err != nil {
		return nil, err
	}
	return participants, nil
}

func (r *participantRepository) Delete(ctx context.Context, eventID, userID uint) error {
	return r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.EventParticipant{}).Error
}
