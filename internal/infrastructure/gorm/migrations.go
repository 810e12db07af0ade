package gormdb

import (
	"github.com/anahush1701/payment-resilience/internal/infrastructure/gorm/migrations"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	return migrations.Run(db)
}
