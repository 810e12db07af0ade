package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// AccountStore is the balance collaborator. The in-memory implementation
// stands in for a transactional backing store; swapping it out must not
// touch the charge flow.
type AccountStore interface {
	// Get returns nil when no account exists under id.
	Get(ctx context.Context, id int64) (*Account, error)
	// Subtract atomically re-reads the balance, checks funds and debits in
	// one step. Returns ErrAccountNotFound or ErrInsufficientFunds.
	Subtract(ctx context.Context, id int64, amount decimal.Decimal) (decimal.Decimal, error)
	Put(ctx context.Context, account *Account) error
}

// GatewayClient performs exactly one gateway call: no retries, no backoff,
// no interpretation of the body.
type GatewayClient interface {
	Send(ctx context.Context, req ChargeRequest) (statusCode int, rawBody []byte, err error)
}

// ChargeExecutor drives the gateway through bounded retries and always
// comes back with a classified outcome, never an error.
type ChargeExecutor interface {
	Execute(ctx context.Context, req ChargeRequest) GatewayOutcome
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, id string) (*Payment, error)
	CreateInTx(ctx context.Context, tx *gorm.DB, payment *Payment) error
}

type IdempotencyRepository interface {
	FindByKey(ctx context.Context, key string) (*IdempotencyRecord, error)
	Create(ctx context.Context, record *IdempotencyRecord) error
	Update(ctx context.Context, record *IdempotencyRecord) error
	DeleteExpired(ctx context.Context) (int64, error)
	FindByKeyForUpdate(ctx context.Context, tx *gorm.DB, key string) (*IdempotencyRecord, error)
	CreateInTx(ctx context.Context, tx *gorm.DB, record *IdempotencyRecord) error
	UpdateInTx(ctx context.Context, tx *gorm.DB, record *IdempotencyRecord) error
}
