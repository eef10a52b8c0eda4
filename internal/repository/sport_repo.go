package repository

import (
	"context"

	"github.com/sportmeet/sportmeet/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SportRepository interface {
	ListActive(ctx context.Context) ([]models.Sport, error)
	FindByName(ctx context.Context, name string) (*models.Sport, error)
	FindByNames(ctx context.Context, names []string) ([]models.Sport, error)
	Seed(ctx context.Context, names []string) error
}

type sportRepository struct {
	db *gorm.DB
}

func NewSportRepository(db *gorm.DB) SportRepository {
	return &sportRepository{db: db}
}

func (r *sportRepository) ListActive(ctx context.Context) ([]models.Sport, error) {
	var sports []models.Sport
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("id ASC").
		Find(&sports).Error
	if err != nil {
		return nil, err
	}
	return sports, nil
}

func (r *sportRepository) FindByName(ctx context.Context, name string) (*models.Sport, error) {
	var sport models.Sport
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&sport).Error; err != nil {
		return nil, err
	}
	return &sport, nil
}

func (r *sportRepository) FindByNames(ctx context.Context, names []string) ([]models.Sport, error) {
	var sports []models.Sport
	if err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&sports).Error; err != nil {
		return nil, err
	}
	return sports, nil
}

// Seed inserts the catalog entries, skipping names that already exist.
func (r *sportRepository) Seed(ctx context.Context, names []string) error {
	sports := make([]models.Sport, len(names))
	for i, name := range names {
		sports[i] = models.Sport{Name: name, Active: true}
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&sports).Error
}
