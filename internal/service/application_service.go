package service

import (
	"context"
	"errors"
	"time"

	"github.com/sportmeet/sportmeet/internal/models"
	"github.com/sportmeet/sportmeet/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("user already has an active application for this event")
	ErrSelfApplication      = errors.New("event creator cannot apply to their own event")
	ErrAlreadyReviewed      = errors.New("application has already been reviewed")
	ErrInvalidDecision      = errors.New("decision must be approve or reject")
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// ApplicationService drives the join-request lifecycle: pending on
// apply, approved or rejected exactly once on review. Approval and the
// matching participant row are committed in one transaction.
type ApplicationService interface {
	Apply(ctx context.Context, eventID, userID uint) (*models.EventApplication, error)
	Review(ctx context.Context, applicationID uint, decision Decision) (*models.EventApplication, error)
	PendingForEvent(ctx context.Context, eventID uint) ([]models.EventApplication, error)
	AddParticipant(ctx context.Context, eventID, userID uint) (*models.EventParticipant, bool, error)
	RemoveParticipant(ctx context.Context, eventID, userID uint) error
}

type applicationService struct {
	appRepo         repository.ApplicationRepository
	eventRepo       repository.EventRepository
	participantRepo repository.ParticipantRepository
}

func NewApplicationService(
	appRepo repository.ApplicationRepository,
	eventRepo repository.EventRepository,
	participantRepo repository.ParticipantRepository,
) ApplicationService {
	return &applicationService{
		appRepo:         appRepo,
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
	}
}

func (s *applicationService) Apply(ctx context.Context, eventID, userID uint) (*models.EventApplication, error) {
	var result *models.EventApplication

	err := s.appRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the event row; serializes concurrent applications for it
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			return ErrEventNotFound
		}

		if event.CreatorID == userID {
			return ErrSelfApplication
		}

		// A pending or approved application blocks a second one; a
		// rejected one does not.
		_, err = s.appRepo.FindActiveByUserAndEvent(ctx, tx, userID, eventID)
		if err == nil {
			return ErrDuplicateApplication
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		app := &models.EventApplication{
			EventID: eventID,
			UserID:  userID,
			Status:  models.StatusPending,
		}
		if err := s.appRepo.Create(ctx, tx, app); err != nil {
			return err
		}
		result = app
		return nil
	})

	return result, err
}

func (s *applicationService) Review(ctx context.Context, applicationID uint, decision Decision) (*models.EventApplication, error) {
	if decision != DecisionApprove && decision != DecisionReject {
		return nil, ErrInvalidDecision
	}

	var result *models.EventApplication

	err := s.appRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		app, err := s.appRepo.FindByIDForUpdate(ctx, tx, applicationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			return err
		}

		if app.Status != models.StatusPending {
			return ErrAlreadyReviewed
		}

		now := time.Now()
		app.ReviewedAt = &now

		switch decision {
		case DecisionApprove:
			app.Status = models.StatusApproved
		case DecisionReject:
			app.Status = models.StatusRejected
		}

		if err := s.appRepo.Save(ctx, tx, app); err != nil {
			return err
		}

		// Approval guarantees a participant row inside the same
		// transaction: either both mutations commit or neither does.
		if decision == DecisionApprove {
			if err := s.ensureParticipant(ctx, tx, app.EventID, app.UserID); err != nil {
				return err
			}
		}

		result = app
		return nil
	})

	return result, err
}

// ensureParticipant creates the membership row unless it already exists,
// e.g. when the organizer added the user directly before approving.
func (s *applicationService) ensureParticipant(ctx context.Context, tx *gorm.DB, eventID, userID uint) error {
	_, err := s.participantRepo.FindByEventAndUser(ctx, tx, eventID, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.participantRepo.Create(ctx, tx, &models.EventParticipant{
		EventID: eventID,
		UserID:  userID,
	})
}

func (s *applicationService) PendingForEvent(ctx context.Context, eventID uint) ([]models.EventApplication, error) {
	pending := models.StatusPending
	return s.appRepo.FindByEvent(ctx, eventID, &pending)
}

// AddParticipant is the direct organizer action. It is idempotent: the
// second return value reports "already joined" instead of duplicating.
func (s *applicationService) AddParticipant(ctx context.Context, eventID, userID uint) (*models.EventParticipant, bool, error) {
	var participant *models.EventParticipant
	var already bool

	err := s.appRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID); err != nil {
			return ErrEventNotFound
		}

		existing, err := s.participantRepo.FindByEventAndUser(ctx, tx, eventID, userID)
		if err == nil {
			participant = existing
			already = true
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		p := &models.EventParticipant{EventID: eventID, UserID: userID}
		if err := s.participantRepo.Create(ctx, tx, p); err != nil {
			return err
		}
		participant = p
		return nil
	})

	return participant, already, err
}

// RemoveParticipant drops direct membership. An approved application for
// the pair stays approved; the two records are decoupled after approval.
func (s *applicationService) RemoveParticipant(ctx context.Context, eventID, userID uint) error {
	return s.participantRepo.Delete(ctx, eventID, userID)
}
