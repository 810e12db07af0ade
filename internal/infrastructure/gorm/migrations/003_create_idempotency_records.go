package migrations

import (
	"github.com/anahush1701/payment-resilience/internal/domain"
	"gorm.io/gorm"
)

func init() {
	Register(Migration{
		ID: "003_create_idempotency_records",
		Migrate: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&domain.IdempotencyRecord{})
		},
	})
}
