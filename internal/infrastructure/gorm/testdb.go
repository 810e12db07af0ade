package gormdb

import (
	"github.com/anahush1701/payment-resilience/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewTestConnection() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// Every sqlite :memory: connection is its own database, so the pool
	// must never grow past one.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	db.AutoMigrate(&domain.Account{}, &domain.Payment{}, &domain.IdempotencyRecord{})
	return db, nil
}
