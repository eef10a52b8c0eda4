package models

import "time"

// WeightRecord is one dated working-weight measurement for an exercise.
type WeightRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Exercise  string    `gorm:"index;not null" json:"exercise"`
	Date      time.Time `gorm:"type:date;not null" json:"date"`
	Weight    float64   `gorm:"not null" json:"weight"`
	CreatedAt time.Time `json:"created_at"`
}
