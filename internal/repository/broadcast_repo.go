package repository

import (
	"context"
	"time"

	"github.com/sportmeet/sportmeet/internal/models"
	"gorm.io/gorm"
)

type BroadcastRepository interface {
	Create(ctx context.Context, b *models.Broadcast) error
	Complete(ctx context.Context, id string, total, success, fail int) error
}

type broadcastRepository struct {
	db *gorm.DB
}

func NewBroadcastRepository(db *gorm.DB) BroadcastRepository {
	return &broadcastRepository{db: db}
}

func (r *broadcastRepository) Create(ctx context.Context, b *models.Broadcast) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *broadcastRepository) Complete(ctx context.Context, id string, total, success, fail int) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.Broadcast{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        models.BroadcastCompleted,
			"total_count":   total,
			"success_count": success,
			"fail_count":    fail,
			"completed_at":  &now,
		}).Error
}
