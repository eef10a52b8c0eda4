package models

import "time"

type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TelegramID int64     `gorm:"uniqueIndex;not null" json:"telegram_id"`
	Username   string    `json:"username,omitempty"`
	FirstName  string    `gorm:"not null" json:"first_name"`
	Age        *int      `json:"age,omitempty"`
	Gender     string    `gorm:"type:varchar(20)" json:"gender,omitempty"`
	City       string    `gorm:"type:varchar(100)" json:"city,omitempty"`
	IsAdmin    bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Sports []Sport `gorm:"many2many:user_sports" json:"sports,omitempty"`
}

// HasProfile reports whether the user completed registration far enough
// to organize events.
func (u *User) HasProfile() bool {
	return u.Age != nil && u.City != ""
}
