package use_cases

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/anahush1701/payment-resilience/internal/domain"
	apperrors "github.com/anahush1701/payment-resilience/internal/domain/errors"
	"github.com/anahush1701/payment-resilience/internal/utils/fingerprint"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChargeAccountUseCase runs the full charge flow: account lookup, the
// retried gateway call, local funds validation and the single balance
// commit. With an idempotency key it additionally guarantees that a client
// retry of an already-committed charge never debits twice.
type ChargeAccountUseCase struct {
	db              *gorm.DB
	accounts        domain.AccountStore
	paymentRepo     domain.PaymentRepository
	idempotencyRepo domain.IdempotencyRepository
	executor        domain.ChargeExecutor
	keyTTL          time.Duration
	deadline        time.Duration
}

func NewChargeAccountUseCase(
	db *gorm.DB,
	accounts domain.AccountStore,
	paymentRepo domain.PaymentRepository,
	idempotencyRepo domain.IdempotencyRepository,
	executor domain.ChargeExecutor,
	keyTTL time.Duration,
	deadline time.Duration,
) *ChargeAccountUseCase {
	return &ChargeAccountUseCase{
		db:              db,
		accounts:        accounts,
		paymentRepo:     paymentRepo,
		idempotencyRepo: idempotencyRepo,
		executor:        executor,
		keyTTL:          keyTTL,
		deadline:        deadline,
	}
}

func (uc *ChargeAccountUseCase) Execute(ctx context.Context, idempotencyKey string, req domain.ChargeRequest) (*domain.Payment, error) {
	if err := validateIdempotencyKey(idempotencyKey); err != nil {
		return nil, err
	}

	if err := validateChargeRequest(req); err != nil {
		return nil, err
	}

	if uc.deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.deadline)
		defer cancel()
	}

	if idempotencyKey == "" {
		return uc.chargeOnce(ctx, req)
	}

	return uc.chargeIdempotent(ctx, idempotencyKey, req)
}

func (uc *ChargeAccountUseCase) chargeOnce(ctx context.Context, req domain.ChargeRequest) (*domain.Payment, error) {
	result, err := uc.processCharge(ctx, req)
	if err != nil {
		log.Printf("charge failed for account %d: %v", req.AccountID, err)
		return nil, apperrors.ErrInternal()
	}

	payment := paymentFromResult(req, result)

	// The outcome row is written even when the caller's context is already
	// gone, so a cancelled charge still leaves an audit trail.
	saveCtx := ctx
	if ctx.Err() != nil {
		saveCtx = context.Background()
	}
	if err := uc.paymentRepo.Create(saveCtx, payment); err != nil {
		log.Printf("failed to save payment %s: %v", payment.ID, err)
		return nil, apperrors.ErrInternal()
	}
	return payment, nil
}

// chargeIdempotent runs in three phases: claim the key, process the charge,
// then persist the result. The gateway call happens outside any database
// transaction so a slow remote can never hold one open.
func (uc *ChargeAccountUseCase) chargeIdempotent(ctx context.Context, idempotencyKey string, req domain.ChargeRequest) (*domain.Payment, error) {
	fp := fingerprint.Compute(req)

	cached, claim, err := uc.claimKey(ctx, idempotencyKey, fp)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}

	result, err := uc.processCharge(ctx, req)
	if err != nil {
		log.Printf("charge failed for account %d: %v", req.AccountID, err)
		uc.releaseClaim(claim)
		return nil, apperrors.ErrInternal()
	}

	payment := paymentFromResult(req, result)
	responseBody, err := json.Marshal(payment)
	if err != nil {
		uc.releaseClaim(claim)
		return nil, apperrors.ErrInternal()
	}

	saveCtx := ctx
	if ctx.Err() != nil {
		saveCtx = context.Background()
	}
	txErr := uc.db.WithContext(saveCtx).Transaction(func(tx *gorm.DB) error {
		if err := uc.paymentRepo.CreateInTx(saveCtx, tx, payment); err != nil {
			return err
		}
		claim.Status = domain.IdempotencyStatusCompleted
		claim.PaymentID = payment.ID
		claim.ResponseBody = responseBody
		return uc.idempotencyRepo.UpdateInTx(saveCtx, tx, claim)
	})
	if txErr != nil {
		log.Printf("failed to record payment %s for key %s: %v", payment.ID, idempotencyKey, txErr)
		return nil, apperrors.ErrInternal()
	}

	return payment, nil
}

// claimKey looks up the key under a row lock and either returns the cached
// payment, marks the key as in flight, or rejects the request.
func (uc *ChargeAccountUseCase) claimKey(ctx context.Context, idempotencyKey, fp string) (*domain.Payment, *domain.IdempotencyRecord, error) {
	var cached *domain.Payment
	var claim *domain.IdempotencyRecord
	var returnErr error

	txErr := uc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := uc.idempotencyRepo.FindByKeyForUpdate(ctx, tx, idempotencyKey)
		if err != nil {
			returnErr = apperrors.ErrInternal()
			return err
		}

		live := record != nil && record.ExpiresAt.After(time.Now())
		if live {
			if record.Status == domain.IdempotencyStatusProcessing {
				returnErr = apperrors.ErrPaymentProcessing()
				return returnErr
			}

			if record.RequestFingerprint != fp {
				returnErr = apperrors.ErrIdempotencyKeyConflict()
				return returnErr
			}

			var payment domain.Payment
			if err := json.Unmarshal(record.ResponseBody, &payment); err != nil {
				returnErr = apperrors.ErrInternal()
				return err
			}
			cached = &payment
			return nil
		}

		claim = &domain.IdempotencyRecord{
			Key:                idempotencyKey,
			RequestFingerprint: fp,
			Status:             domain.IdempotencyStatusProcessing,
			CreatedAt:          time.Now(),
			ExpiresAt:          time.Now().Add(uc.keyTTL),
		}

		// An expired row still occupies the key, so it is recycled in
		// place instead of inserted over.
		if record != nil {
			if err := uc.idempotencyRepo.UpdateInTx(ctx, tx, claim); err != nil {
				returnErr = apperrors.ErrInternal()
				return err
			}
			return nil
		}
		if err := uc.idempotencyRepo.CreateInTx(ctx, tx, claim); err != nil {
			returnErr = apperrors.ErrInternal()
			return err
		}
		return nil
	})

	if txErr != nil && returnErr != nil {
		return nil, nil, returnErr
	}
	if txErr != nil {
		return nil, nil, apperrors.ErrInternal()
	}

	return cached, claim, nil
}

// releaseClaim expires an in-flight record so a later retry of the same key
// is not locked out until the TTL runs down.
func (uc *ChargeAccountUseCase) releaseClaim(claim *domain.IdempotencyRecord) {
	claim.ExpiresAt = time.Now()
	if err := uc.idempotencyRepo.Update(context.Background(), claim); err != nil {
		log.Printf("failed to release idempotency claim %s: %v", claim.Key, err)
	}
}

// processCharge is the core flow. The balance is mutated at most once per
// call, and only after a confirmed-success outcome. An error return means
// an infrastructure fault, never a gateway or precondition failure: those
// are all classified into the result.
func (uc *ChargeAccountUseCase) processCharge(ctx context.Context, req domain.ChargeRequest) (domain.PaymentResult, error) {
	account, err := uc.accounts.Get(ctx, req.AccountID)
	if err != nil {
		if ctx.Err() != nil {
			return domain.ResultFailed(domain.ReasonCancelled), nil
		}
		return domain.PaymentResult{}, err
	}
	if account == nil {
		log.Printf("account %d not found", req.AccountID)
		return domain.ResultFailed(domain.ReasonAccountNotFound), nil
	}

	outcome := uc.executor.Execute(ctx, req)

	if !outcome.Decisive() {
		if ctx.Err() != nil {
			return domain.ResultFailed(domain.ReasonCancelled), nil
		}
		return domain.ResultFailed(domain.ReasonGatewayError), nil
	}

	if !outcome.Success {
		log.Printf("gateway declined charge for account %d: %s", req.AccountID, outcome.Message)
		return domain.ResultFailed(domain.GatewayFailureReason(outcome.Message)), nil
	}

	// The amount is validated only after confirmation, so a gateway-level
	// decline is reported as a decline rather than masked by a local
	// validation failure that never reached the network.
	if req.Amount.IsNegative() {
		log.Printf("negative charge amount for account %d: %s", req.AccountID, req.Amount)
		return domain.ResultFailed(domain.ReasonNegativeAmount), nil
	}

	newBalance, err := uc.accounts.Subtract(ctx, req.AccountID, req.Amount)
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		log.Printf("insufficient funds for account %d", req.AccountID)
		return domain.ResultFailed(domain.ReasonInsufficientFunds), nil
	case errors.Is(err, domain.ErrAccountNotFound):
		return domain.ResultFailed(domain.ReasonAccountNotFound), nil
	case err != nil:
		if ctx.Err() != nil {
			return domain.ResultFailed(domain.ReasonCancelled), nil
		}
		return domain.PaymentResult{}, err
	}

	log.Printf("charge succeeded for account %d, new balance %s", req.AccountID, newBalance)
	return domain.ResultSucceeded(newBalance), nil
}

func paymentFromResult(req domain.ChargeRequest, result domain.PaymentResult) *domain.Payment {
	payment := &domain.Payment{
		ID:        uuid.New().String(),
		AccountID: req.AccountID,
		Amount:    req.Amount,
		CreatedAt: time.Now(),
	}
	if result.Succeeded {
		payment.Status = domain.PaymentStatusSucceeded
		payment.NewBalance = result.NewBalance
	} else {
		payment.Status = domain.PaymentStatusFailed
		payment.FailReason = result.Reason
	}
	return payment
}

func validateIdempotencyKey(key string) error {
	if len(key) > 64 {
		return apperrors.ErrIdempotencyKeyTooLong()
	}
	return nil
}

func validateChargeRequest(req domain.ChargeRequest) error {
	if req.AccountID == 0 {
		return apperrors.ErrInvalidChargeRequest("account_id is required")
	}
	return nil
}
