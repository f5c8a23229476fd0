package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lancehub-id/lancehub_be/internal/models"
)

func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// Migrate creates or updates the marketplace schema. Uniqueness of
// usernames, emails, (project,freelancer) bids and (project,reviewer)
// reviews lives in the indexes declared on the models.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Bid{},
		&models.Review{},
	)
}
