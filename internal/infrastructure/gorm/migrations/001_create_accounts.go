package migrations

import (
	"github.com/anahush1701/payment-resilience/internal/domain"
	"gorm.io/gorm"
)

func init() {
	Register(Migration{
		ID: "001_create_accounts",
		Migrate: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&domain.Account{})
		},
	})
}
