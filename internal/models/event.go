package models

import "time"

type Event struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"not null" json:"title"`
	Date            time.Time `gorm:"not null" json:"date"`
	Location        string    `gorm:"type:varchar(500)" json:"location,omitempty"`
	Latitude        *float64  `json:"latitude,omitempty"`
	Longitude       *float64  `json:"longitude,omitempty"`
	SportID         *uint     `gorm:"index" json:"sport_id,omitempty"`
	MaxParticipants *int      `json:"max_participants,omitempty"`
	Fee             *float64  `json:"fee,omitempty"`
	Note            string    `gorm:"type:text" json:"note,omitempty"`
	CreatorID       uint      `gorm:"index;not null" json:"creator_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Sport   *Sport `gorm:"foreignKey:SportID" json:"sport,omitempty"`
	Creator *User  `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
}
