package models

import "time"

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

// EventApplication is a join request. It starts pending and is resolved
// exactly once by the event creator; approved and rejected are terminal.
type EventApplication struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	EventID    uint              `gorm:"index;not null" json:"event_id"`
	UserID     uint              `gorm:"index;not null" json:"user_id"`
	Status     ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	AppliedAt  time.Time         `gorm:"autoCreateTime" json:"applied_at"`
	ReviewedAt *time.Time        `json:"reviewed_at,omitempty"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
