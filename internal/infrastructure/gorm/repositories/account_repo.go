package repositories

import (
	"context"
	"errors"

	"github.com/anahush1701/payment-resilience/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AccountRepo struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) domain.AccountStore {
	return &AccountRepo{db: db}
}

func (r *AccountRepo) Get(ctx context.Context, id int64) (*domain.Account, error) {
	var account domain.Account
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Subtract debits the account in one transaction: the row is locked, the
// balance re-read, the funds check and the update happen under that lock.
// Locking is per row, so charges against other accounts do not contend.
func (r *AccountRepo) Subtract(ctx context.Context, id int64, amount decimal.Decimal) (decimal.Decimal, error) {
	var newBalance decimal.Decimal

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account domain.Account
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&account).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrAccountNotFound
		}
		if err != nil {
			return err
		}

		if account.Balance.LessThan(amount) {
			return domain.ErrInsufficientFunds
		}

		newBalance = account.Balance.Sub(amount)
		return tx.Model(&domain.Account{}).
			Where("id = ?", id).
			Update("balance", newBalance).Error
	})
	if err != nil {
		return decimal.Zero, err
	}

	return newBalance, nil
}

func (r *AccountRepo) Put(ctx context.Context, account *domain.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}
