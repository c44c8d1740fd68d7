package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jwchoi684/rg-manager/config"
	"github.com/jwchoi684/rg-manager/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}

// Migrate is split out so tests can run the same schema on their own DB.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.Class{},
		&models.Attendance{},
		&models.Competition{},
		&models.CompetitionStudent{},
		&models.ActionLog{},
	)
}
