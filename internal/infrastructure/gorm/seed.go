package gormdb

import (
	"log"

	"github.com/anahush1701/payment-resilience/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedDemoAccounts provisions the demo ledger: account 1 funded, account 2
// empty. Existing rows are left untouched.
func SeedDemoAccounts(db *gorm.DB) error {
	seed := []domain.Account{
		{ID: 1, Balance: decimal.NewFromInt(5000)},
		{ID: 2, Balance: decimal.Zero},
	}

	for _, account := range seed {
		result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&account)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			log.Printf("seeded account %d with balance %s", account.ID, account.Balance)
		}
	}
	return nil
}
