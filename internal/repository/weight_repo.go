package repository

import (
	"context"

	"github.com/sportmeet/sportmeet/internal/models"
	"gorm.io/gorm"
)

type WeightRepository interface {
	Create(ctx context.Context, record *models.WeightRecord) error
	DistinctExercises(ctx context.Context, userID uint) ([]string, error)
	FindByExercise(ctx context.Context, userID uint, exercise string, limit int) ([]models.WeightRecord, error)
}

type weightRepository struct {
	db *gorm.DB
}

func NewWeightRepository(db *gorm.DB) WeightRepository {
	return &weightRepository{db: db}
}

func (r *weightRepository) Create(ctx context.Context, record *models.WeightRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *weightRepository) DistinctExercises(ctx context.Context, userID uint) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.WeightRecord{}).
		Where("user_id = ?", userID).
		Distinct("exercise").
		Order("exercise ASC").
		Pluck("exercise", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// FindByExercise returns the most recent records first.
func (r *weightRepository) FindByExercise(ctx context.Context, userID uint, exercise string, limit int) ([]models.WeightRecord, error) {
	var records []models.WeightRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND exercise = ?", userID, exercise).
		Order("date DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
