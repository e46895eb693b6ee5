package database

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/Asnor14/rsvp01-admin/internal/models"
)

func Initialize(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate models
	if err := db.AutoMigrate(
		&models.Invitation{},
		&models.Guest{},
		&models.PushSubscription{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
