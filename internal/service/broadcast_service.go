package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/sportmeet/sportmeet/internal/models"
	"github.com/sportmeet/sportmeet/internal/notify"
	"github.com/sportmeet/sportmeet/internal/repository"
)

// BroadcastResult is the aggregate outcome of one fan-out run.
type BroadcastResult struct {
	BroadcastID string
	Total       int
	Success     int
	Fail        int
}

type BroadcastService interface {
	// Run sends text to every known user. One recipient's failure never
	// aborts the remaining sends; each outcome is counted and the
	// aggregate persisted.
	Run(ctx context.Context, adminUserID uint, text string) (*BroadcastResult, error)
	SendPersonal(ctx context.Context, chatID int64, text string) error
}

type broadcastService struct {
	broadcastRepo repository.BroadcastRepository
	userRepo      repository.UserRepository
	dispatcher    notify.Dispatcher
}

const broadcastPageSize = 100

func NewBroadcastService(
	broadcastRepo repository.BroadcastRepository,
	userRepo repository.UserRepository,
	dispatcher notify.Dispatcher,
) BroadcastService {
	return &broadcastService{
		broadcastRepo: broadcastRepo,
		userRepo:      userRepo,
		dispatcher:    dispatcher,
	}
}

func (s *broadcastService) Run(ctx context.Context, adminUserID uint, text string) (*BroadcastResult, error) {
	b := &models.Broadcast{
		ID:          uuid.NewString(),
		AdminUserID: adminUserID,
		Text:        text,
		Status:      models.BroadcastPending,
	}
	if err := s.broadcastRepo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create broadcast: %w", err)
	}

	result := &BroadcastResult{BroadcastID: b.ID}

	offset := 0
	for {
		users, err := s.userRepo.List(ctx, offset, broadcastPageSize)
		if err != nil {
			return nil, fmt.Errorf("list recipients: %w", err)
		}
		if len(users) == 0 {
			break
		}

		for _, user := range users {
			result.Total++
			if err := s.dispatcher.Send(ctx, user.TelegramID, text); err != nil {
				result.Fail++
				log.Printf("[Broadcast] send to %d failed: %v", user.TelegramID, err)
				continue
			}
			result.Success++
		}

		offset += broadcastPageSize
	}

	if err := s.broadcastRepo.Complete(ctx, b.ID, result.Total, result.Success, result.Fail); err != nil {
		return nil, fmt.Errorf("complete broadcast: %w", err)
	}

	log.Printf("[Broadcast] %s done: total=%d success=%d fail=%d",
		b.ID, result.Total, result.Success, result.Fail)
	return result, nil
}

func (s *broadcastService) SendPersonal(ctx context.Context, chatID int64, text string) error {
	return s.dispatcher.Send(ctx, chatID, text)
}
