package models

import "time"

type BroadcastStatus string

const (
	BroadcastPending   BroadcastStatus = "pending"
	BroadcastCompleted BroadcastStatus = "completed"
)

// Broadcast records one admin fan-out run and its aggregate outcome.
type Broadcast struct {
	ID           string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	AdminUserID  uint            `gorm:"index;not null" json:"admin_user_id"`
	Text         string          `gorm:"type:text;not null" json:"text"`
	Status       BroadcastStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TotalCount   int             `gorm:"not null;default:0" json:"total_count"`
	SuccessCount int             `gorm:"not null;default:0" json:"success_count"`
	FailCount    int             `gorm:"not null;default:0" json:"fail_count"`
	CreatedAt    time.Time       `json:"created_at"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
}
