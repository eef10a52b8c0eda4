package repository

import (
	"context"

	"github.com/sportmeet/sportmeet/internal/models"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, app *models.EventApplication) error
	FindByID(ctx context.Context, id uint) (*models.EventApplication, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.EventApplication, error)
	FindActiveByUserAndEvent(ctx context.Context, tx *gorm.DB, userID, eventID uint) (*models.EventApplication, error)
	FindByEvent(ctx context.Context, eventID uint, status *models.ApplicationStatus) ([]models.EventApplication, error)
	Save(ctx context.Context, tx *gorm.DB, app *models.EventApplication) error
	GetDB() *gorm.DB
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *applicationRepository) Create(ctx context.Context, tx *gorm.DB, app *models.EventApplication) error {
	return tx.WithContext(ctx).Create(app).Error
}

func (r *applicationRepository) FindByID(ctx context.Context, id uint) (*models.EventApplication, error) {
	var app models.EventApplication
	if err := r.db.WithContext(ctx).First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// FindByIDForUpdate locks the application row so concurrent reviews serialize.
func (r *applicationRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.EventApplication, error) {
	var app models.EventApplication
	if err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// FindActiveByUserAndEvent returns a pending or approved application for
// the pair. Rejected applications do not count: the user may re-apply.
func (r *applicationRepository) FindActiveByUserAndEvent(ctx context.Context, tx *gorm.DB, userID, eventID uint) (*models.EventApplication, error) {
	var app models.EventApplication
	err := tx.WithContext(ctx).
		Where("user_id = ? AND event_id = ? AND status <> ?", userID, eventID, models.StatusRejected).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) FindByEvent(ctx context.Context, eventID uint, status *models.ApplicationStatus) ([]models.EventApplication, error) {
	var apps []models.EventApplication
	q := r.db.WithContext(ctx).Where("event_id = ?", eventID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("applied_at DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepository) Save(ctx context.Context, tx *gorm.DB, app *models.EventApplication) error {
	return tx.WithContext(ctx).Save(app).Error
}
