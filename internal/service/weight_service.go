package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sportmeet/sportmeet/internal/models"
	"github.com/sportmeet/sportmeet/internal/repository"
)

var ErrInvalidWeight = errors.New("weight must be positive")

type WeightService interface {
	AddRecord(ctx context.Context, userID uint, exercise string, date time.Time, weight float64) (*models.WeightRecord, error)
	Exercises(ctx context.Context, userID uint) ([]string, error)
	Progress(ctx context.Context, userID uint, exercise string, limit int) ([]models.WeightRecord, error)
}

type weightService struct {
	repo repository.WeightRepository
}

func NewWeightService(repo repository.WeightRepository) WeightService {
	return &weightService{repo: repo}
}

func (s *weightService) AddRecord(ctx context.Context, userID uint, exercise string, date time.Time, weight float64) (*models.WeightRecord, error) {
	if weight <= 0 {
		return nil, ErrInvalidWeight
	}
	record := &models.WeightRecord{
		UserID:   userID,
		Exercise: exercise,
		Date:     date,
		Weight:   weight,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create weight record: %w", err)
	}
	return record, nil
}

func (s *weightService) Exercises(ctx context.Context, userID uint) ([]string, error) {
	return s.repo.DistinctExercises(ctx, userID)
}

func (s *weightService) Progress(ctx context.Context, userID uint, exercise string, limit int) ([]models.WeightRecord, error) {
	return s.repo.FindByExercise(ctx, userID, exercise, limit)
}
