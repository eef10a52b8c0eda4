package database

import (
	"log"

	"github.com/sportmeet/sportmeet/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Sport{},
		&models.Event{},
		&models.EventApplication{},
		&models.EventParticipant{},
		&models.WeightRecord{},
		&models.Broadcast{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Partial unique index: one pending/approved application per (event, user).
	// Rejected rows stay behind without blocking a re-application.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_application_active
		ON event_applications (event_id, user_id)
		WHERE status <> 'rejected'
	`)

	// Membership is unique outright; approval must never duplicate a
	// participant the organizer already added.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_participant_unique
		ON event_participants (event_id, user_id)
	`)

	return db
}
