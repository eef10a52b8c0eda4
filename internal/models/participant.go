package models

import "time"

// EventParticipant is confirmed membership of a user in an event,
// created either directly by the organizer or when an application is approved.
type EventParticipant struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	EventID  uint      `gorm:"index;not null" json:"event_id"`
	UserID   uint      `gorm:"index;not null" json:"user_id"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
