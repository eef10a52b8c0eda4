package dto

import (
	"time"

	"github.com/sportmeet/sportmeet/internal/models"
)

type ApplicationResponse struct {
	ID         uint                     `json:"id"`
	EventID    uint                     `json:"event_id"`
	UserID     uint                     `json:"user_id"`
	Status     models.ApplicationStatus `json:"status"`
	AppliedAt  time.Time                `json:"applied_at"`
	ReviewedAt *time.Time               `json:"reviewed_at,omitempty"`
}

type ParticipantResponse struct {
	ID            uint      `json:"id"`
	EventID       uint      `json:"event_id"`
	UserID        uint      `json:"user_id"`
	JoinedAt      time.Time `json:"joined_at"`
	AlreadyJoined bool      `json:"already_joined"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToApplicationResponse(app *models.EventApplication) ApplicationResponse {
	return ApplicationResponse{
		ID:         app.ID,
		EventID:    app.EventID,
		UserID:     app.UserID,
		Status:     app.Status,
		AppliedAt:  app.AppliedAt,
		ReviewedAt: app.ReviewedAt,
	}
}

func ToParticipantResponse(p *models.EventParticipant, already bool) ParticipantResponse {
	return ParticipantResponse{
		ID:            p.ID,
		EventID:       p.EventID,
		UserID:        p.UserID,
		JoinedAt:      p.JoinedAt,
		AlreadyJoined: already,
	}
}
