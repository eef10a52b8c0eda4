package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sportmeet/sportmeet/internal/models"
)

type mockEventRepository struct {
	CreateFunc            func(ctx context.Context, event *models.Event) error
	FindByIDFunc          func(ctx context.Context, id uint) (*models.Event, error)
	FindByIDForUpdateFunc func(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error)
	SearchUpcomingFunc    func(ctx context.Context, after time.Time, limit int) ([]models.Event, error)
	FindByCreatorFunc     func(ctx context.Context, creatorID uint) ([]models.Event, error)
	FindJoinedByUserFunc  func(ctx context.Context, userID uint) ([]models.Event, error)
}

func (m *mockEventRepository) Create(ctx context.Context, event *models.Event) error {
	return m.CreateFunc(ctx, event)
}

func (m *mockEventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockEventRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
	return m.FindByIDForUpdateFunc(ctx, tx, id)
}

func (m *mockEventRepository) SearchUpcoming(ctx context.Context, after time.Time, limit int) ([]models.Event, error) {
	return m.SearchUpcomingFunc(ctx, after, limit)
}

func (m *mockEventRepository) FindByCreator(ctx context.Context, creatorID uint) ([]models.Event, error) {
	return m.FindByCreatorFunc(ctx, creatorID)
}

func (m *mockEventRepository) FindJoinedByUser(ctx context.Context, userID uint) ([]models.Event, error) {
	return m.FindJoinedByUserFunc(ctx, userID)
}

type mockUserRepository struct {
	CreateFunc           func(ctx context.Context, user *models.User) error
	FindByIDFunc         func(ctx context.Context, id uint) (*models.User, error)
	FindByTelegramIDFunc func(ctx context.Context, telegramID int64) (*models.User, error)
	SaveFunc             func(ctx context.Context, user *models.User) error
	ReplaceSportsFunc    func(ctx context.Context, user *models.User, sports []models.Sport) error
	ListFunc             func(ctx context.Context, offset, limit int) ([]models.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.CreateFunc(ctx, user)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockUserRepository) FindByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	return m.FindByTelegramIDFunc(ctx, telegramID)
}

func (m *mockUserRepository) Save(ctx context.Context, user *models.User) error {
	return m.SaveFunc(ctx, user)
}

func (m *mockUserRepository) ReplaceSports(ctx context.Context, user *models.User, sports []models.Sport) error {
	return m.ReplaceSportsFunc(ctx, user, sports)
}

func (m *mockUserRepository) List(ctx context.Context, offset, limit int) ([]models.User, error) {
	return m.ListFunc(ctx, offset, limit)
}

type mockSportRepository struct {
	ListActiveFunc  func(ctx context.Context) ([]models.Sport, error)
	FindByNameFunc  func(ctx context.Context, name string) (*models.Sport, error)
	FindByNamesFunc func(ctx context.Context, names []string) ([]models.Sport, error)
	SeedFunc        func(ctx context.Context, names []string) error
}

func (m *mockSportRepository) ListActive(ctx context.Context) ([]models.Sport, error) {
	return m.ListActiveFunc(ctx)
}

func (m *mockSportRepository) FindByName(ctx context.Context, name string) (*models.Sport, error) {
	return m.FindByNameFunc(ctx, name)
}

func (m *mockSportRepository) FindByNames(ctx context.Context, names []string) ([]models.Sport, error) {
	return m.FindByNamesFunc(ctx, names)
}

func (m *mockSportRepository) Seed(ctx context.Context, names []string) error {
	return m.SeedFunc(ctx, names)
}

type mockWeightRepository struct {
	CreateFunc            func(ctx context.Context, record *models.WeightRecord) error
	DistinctExercisesFunc func(ctx context.Context, userID uint) ([]string, error)
	FindByExerciseFunc    func(ctx context.Context, userID uint, exercise string, limit int) ([]models.WeightRecord, error)
}

func (m *mockWeightRepository) Create(ctx context.Context, record *models.WeightRecord) error {
	return m.CreateFunc(ctx, record)
}

func (m *mockWeightRepository) DistinctExercises(ctx context.Context, userID uint) ([]string, error) {
	return m.DistinctExercisesFunc(ctx, userID)
}

func (m *mockWeightRepository) FindByExercise(ctx context.Context, userID uint, exercise string, limit int) ([]models.WeightRecord, error) {
	return m.FindByExerciseFunc(ctx, userID, exercise, limit)
}

type mockBroadcastRepository struct {
	CreateFunc   func(ctx context.Context, b *models.Broadcast) error
	CompleteFunc func(ctx context.Context, id string, total, success, fail int) error
}

func (m *mockBroadcastRepository) Create(ctx context.Context, b *models.Broadcast) error {
	return m.CreateFunc(ctx, b)
}

func (m *mockBroadcastRepository) Complete(ctx context.Context, id string, total, success, fail int) error {
	return m.CompleteFunc(ctx, id, total, success, fail)
}

type mockDispatcher struct {
	SendFunc func(ctx context.Context, chatID int64, text string) error
}

func (m *mockDispatcher) Send(ctx context.Context, chatID int64, text string) error {
	return m.SendFunc(ctx, chatID, text)
}
