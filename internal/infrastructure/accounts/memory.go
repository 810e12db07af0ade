package accounts

import (
	"context"
	"sync"

	"github.com/anahush1701/payment-resilience/internal/domain"
	"github.com/shopspring/decimal"
)

type memoryAccount struct {
	mu      sync.Mutex
	account domain.Account
}

// MemoryStore is an in-memory AccountStore standing in for a transactional
// backing store. Synchronization is per record: the outer lock only guards
// the map, so charges against different accounts never contend.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[int64]*memoryAccount
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[int64]*memoryAccount)}
}

func (s *MemoryStore) Get(_ context.Context, id int64) (*domain.Account, error) {
	s.mu.RLock()
	rec, ok := s.accounts[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	account := rec.account
	return &account, nil
}

func (s *MemoryStore) Subtract(_ context.Context, id int64, amount decimal.Decimal) (decimal.Decimal, error) {
	s.mu.RLock()
	rec, ok := s.accounts[id]
	s.mu.RUnlock()
	if !ok {
		return decimal.Zero, domain.ErrAccountNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	// Fresh read under the record lock: the balance seen at lookup time may
	// be stale by the time the gateway confirms.
	if rec.account.Balance.LessThan(amount) {
		return decimal.Zero, domain.ErrInsufficientFunds
	}
	rec.account.Balance = rec.account.Balance.Sub(amount)
	return rec.account.Balance, nil
}

func (s *MemoryStore) Put(_ context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.ID] = &memoryAccount{account: *account}
	return nil
}
