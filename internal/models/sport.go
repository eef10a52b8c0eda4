package models

type Sport struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"uniqueIndex;not null" json:"name"`
	Active bool   `gorm:"not null;default:true" json:"active"`
}

// DefaultSports seeds the catalog on first boot.
var DefaultSports = []string{
	"Football",
	"Basketball",
	"Volleyball",
	"Tennis",
	"Running",
	"Yoga",
	"Swimming",
	"Cycling",
	"Gym",
	"Boxing",
}
