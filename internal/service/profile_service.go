package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sportmeet/sportmeet/internal/models"
	"github.com/sportmeet/sportmeet/internal/repository"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// ProfileUpdate carries the fields collected by the registration flow.
// Nil / empty fields are left untouched.
type ProfileUpdate struct {
	Age    *int
	Gender string
	City   string
	Sports []string
}

type ProfileService interface {
	GetOrCreate(ctx context.Context, telegramID int64, username, firstName string) (*models.User, error)
	FindByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	Update(ctx context.Context, userID uint, update ProfileUpdate) (*models.User, error)
	ListUsers(ctx context.Context, offset, limit int) ([]models.User, error)
}

type profileService struct {
	userRepo  repository.UserRepository
	sportRepo repository.SportRepository
}

func NewProfileService(userRepo repository.UserRepository, sportRepo repository.SportRepository) ProfileService {
	return &profileService{userRepo: userRepo, sportRepo: sportRepo}
}

func (s *profileService) GetOrCreate(ctx context.Context, telegramID int64, username, firstName string) (*models.User, error) {
	user, err := s.userRepo.FindByTelegramID(ctx, telegramID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if firstName == "" {
		firstName = "User"
	}
	user = &models.User{
		TelegramID: telegramID,
		Username:   username,
		FirstName:  firstName,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *profileService) FindByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	user, err := s.userRepo.FindByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *profileService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *profileService) Update(ctx context.Context, userID uint, update ProfileUpdate) (*models.User, error) {
	user, err := s.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Age != nil {
		user.Age = update.Age
	}
	if update.Gender != "" {
		user.Gender = update.Gender
	}
	if update.City != "" {
		user.City = update.City
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	if update.Sports != nil {
		sports, err := s.sportRepo.FindByNames(ctx, update.Sports)
		if err != nil {
			return nil, fmt.Errorf("resolve sports: %w", err)
		}
		if err := s.userRepo.ReplaceSports(ctx, user, sports); err != nil {
			return nil, fmt.Errorf("replace sports: %w", err)
		}
		user.Sports = sports
	}

	return user, nil
}

func (s *profileService) ListUsers(ctx context.Context, offset, limit int) ([]models.User, error) {
	return s.userRepo.List(ctx, offset, limit)
}
