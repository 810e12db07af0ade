package use_cases

import (
	"context"

	"github.com/anahush1701/payment-resilience/internal/domain"
	apperrors "github.com/anahush1701/payment-resilience/internal/domain/errors"
)

type GetAccountUseCase struct {
	accounts domain.AccountStore
}

func NewGetAccountUseCase(accounts domain.AccountStore) *GetAccountUseCase {
	return &GetAccountUseCase{accounts: accounts}
}

func (uc *GetAccountUseCase) Execute(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := uc.accounts.Get(ctx, accountID)
	if err != nil {
		return nil, apperrors.ErrInternal()
	}
	if account == nil {
		return nil, apperrors.ErrAccountNotFound()
	}
	return account, nil
}
