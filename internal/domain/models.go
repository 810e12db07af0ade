package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusSucceeded PaymentStatus = "SUCCEEDED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

type IdempotencyStatus string

const (
	IdempotencyStatusProcessing IdempotencyStatus = "PROCESSING"
	IdempotencyStatusCompleted  IdempotencyStatus = "COMPLETED"
)

// Account is a balance record addressable by id. The balance is mutated
// only through AccountStore.Subtract, and only after the gateway has
// confirmed the charge.
type Account struct {
	ID        int64           `json:"id" gorm:"primaryKey"`
	Balance   decimal.Decimal `json:"balance" gorm:"type:decimal(20,4);not null"`
	CreatedAt time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

// ChargeRequest is the transient input of a single charge. Never persisted.
type ChargeRequest struct {
	AccountID int64           `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
}

type Payment struct {
	ID         string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	AccountID  int64           `json:"account_id" gorm:"index;not null"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(20,4);not null"`
	Status     PaymentStatus   `json:"status" gorm:"type:varchar(20);not null"`
	NewBalance decimal.Decimal `json:"new_balance" gorm:"type:decimal(20,4)"`
	FailReason string          `json:"fail_reason,omitempty" gorm:"type:text"`
	CreatedAt  time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

type IdempotencyRecord struct {
	Key                string            `json:"key" gorm:"primaryKey;type:varchar(64)"`
	RequestFingerprint string            `json:"request_fingerprint" gorm:"type:varchar(64);not null"`
	PaymentID          string            `json:"payment_id,omitempty" gorm:"type:varchar(36)"`
	ResponseBody       []byte            `json:"-" gorm:"type:jsonb"`
	Status             IdempotencyStatus `json:"status" gorm:"type:varchar(20);not null"`
	CreatedAt          time.Time         `json:"created_at" gorm:"autoCreateTime"`
	ExpiresAt          time.Time         `json:"expires_at" gorm:"index;not null"`
}

func (Account) TableName() string {
	return "accounts"
}

func (Payment) TableName() string {
	return "payments"
}

func (IdempotencyRecord) TableName() string {
	return "idempotency_records"
}
