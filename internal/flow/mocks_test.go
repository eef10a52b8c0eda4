package flow

import (
	"context"
	"time"

	"github.com/sportmeet/sportmeet/internal/models"
	"github.com/sportmeet/sportmeet/internal/service"
)

type mockProfileService struct {
	GetOrCreateFunc      func(ctx context.Context, telegramID int64, username, firstName string) (*models.User, error)
	FindByTelegramIDFunc func(ctx context.Context, telegramID int64) (*models.User, error)
	FindByIDFunc         func(ctx context.Context, id uint) (*models.User, error)
	UpdateFunc           func(ctx context.Context, userID uint, update service.ProfileUpdate) (*models.User, error)
	ListUsersFunc        func(ctx context.Context, offset, limit int) ([]models.User, error)
}

func (m *mockProfileService) GetOrCreate(ctx context.Context, telegramID int64, username, firstName string) (*models.User, error) {
	return m.GetOrCreateFunc(ctx, telegramID, username, firstName)
}

func (m *mockProfileService) FindByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	return m.FindByTelegramIDFunc(ctx, telegramID)
}

func (m *mockProfileService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockProfileService) Update(ctx context.Context, userID uint, update service.ProfileUpdate) (*models.User, error) {
	return m.UpdateFunc(ctx, userID, update)
}

func (m *mockProfileService) ListUsers(ctx context.Context, offset, limit int) ([]models.User, error) {
	return m.ListUsersFunc(ctx, offset, limit)
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

type mockEventService struct {
	CreateFunc         func(ctx context.Context, in service.CreateEventInput) (*models.Event, error)
	GetFunc            func(ctx context.Context, id uint) (*models.Event, error)
	SearchUpcomingFunc func(ctx context.Context, limit int) ([]models.Event, error)
	CreatedByFunc      func(ctx context.Context, userID uint) ([]models.Event, error)
	JoinedByFunc       func(ctx context.Context, userID uint) ([]models.Event, error)
}

func (m *mockEventService) Create(ctx context.Context, in service.CreateEventInput) (*models.Event, error) {
	return m.CreateFunc(ctx, in)
}

func (m *mockEventService) Get(ctx context.Context, id uint) (*models.Event, error) {
	return m.GetFunc(ctx, id)
}

func (m *mockEventService) SearchUpcoming(ctx context.Context, limit int) ([]models.Event, error) {
	return m.SearchUpcomingFunc(ctx, limit)
}

func (m *mockEventService) CreatedBy(ctx context.Context, userID uint) ([]models.Event, error) {
	return m.CreatedByFunc(ctx, userID)
}

func (m *mockEventService) JoinedBy(ctx context.Context, userID uint) ([]models.Event, error) {
	return m.JoinedByFunc(ctx, userID)
}

type mockWeightService struct {
	AddRecordFunc func(ctx context.Context, userID uint, exercise string, date time.Time, weight float64) (*models.WeightRecord, error)
	ExercisesFunc func(ctx context.Context, userID uint) ([]string, error)
	ProgressFunc  func(ctx context.Context, userID uint, exercise string, limit int) ([]models.WeightRecord, error)
}

func (m *mockWeightService) AddRecord(ctx context.Context, userID uint, exercise string, date time.Time, weight float64) (*models.WeightRecord, error) {
	return m.AddRecordFunc(ctx, userID, exercise, date, weight)
}

func (m *mockWeightService) Exercises(ctx context.Context, userID uint) ([]string, error) {
	return m.ExercisesFunc(ctx, userID)
}

func (m *mockWeightService) Progress(ctx context.Context, userID uint, exercise string, limit int) ([]models.WeightRecord, error) {
	return m.ProgressFunc(ctx, userID, exercise, limit)
}

type mockBroadcastService struct {
	RunFunc          func(ctx context.Context, adminUserID uint, text string) (*service.BroadcastResult, error)
	SendPersonalFunc func(ctx context.Context, chatID int64, text string) error
}

func (m *mockBroadcastService) Run(ctx context.Context, adminUserID uint, text string) (*service.BroadcastResult, error) {
	return m.RunFunc(ctx, adminUserID, text)
}

func (m *mockBroadcastService) SendPersonal(ctx context.Context, chatID int64, text string) error {
	return m.SendPersonalFunc(ctx, chatID, text)
}
