package use_cases

import (
	"context"
	"log"
	"time"

	"github.com/anahush1701/payment-resilience/internal/domain"
	"github.com/anahush1701/payment-resilience/internal/infrastructure/gateway"
	"github.com/anahush1701/payment-resilience/internal/infrastructure/gorm/repositories"
	"github.com/anahush1701/payment-resilience/internal/utils/config"
	"gorm.io/gorm"
)

type Container struct {
	ChargeAccount       *ChargeAccountUseCase
	GetPayment          *GetPaymentUseCase
	GetAccount          *GetAccountUseCase
	GetByIdempotencyKey *GetByIdempotencyKeyUseCase
}

func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config) *Container {
	accountStore := repositories.NewAccountRepo(db)
	paymentRepo := repositories.NewPaymentRepo(db)
	idempotencyRepo := repositories.NewIdempotencyRepo(db)

	client := gateway.NewHTTPClient(cfg.GatewayURL, cfg.GatewayTimeout)
	executor := gateway.NewExecutor(client, cfg.RetryMaxAttempts, cfg.RetryBaseBackoff)

	go startCleanupLoop(ctx, idempotencyRepo, cfg.CleanupInterval)

	return &Container{
		ChargeAccount: NewChargeAccountUseCase(
			db,
			accountStore,
			paymentRepo,
			idempotencyRepo,
			executor,
			cfg.IdempotencyKeyTTL,
			cfg.OperationDeadline,
		),
		GetPayment:          NewGetPaymentUseCase(paymentRepo),
		GetAccount:          NewGetAccountUseCase(accountStore),
		GetByIdempotencyKey: NewGetByIdempotencyKeyUseCase(idempotencyRepo),
	}
}

func startCleanupLoop(ctx context.Context, repo domain.IdempotencyRepository, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		cleaned, err := repo.DeleteExpired(ctx)
		if err != nil {
			log.Printf("cleanup error: %v", err)
			continue
		}
		if cleaned > 0 {
			log.Printf("cleaned %d expired idempotency records", cleaned)
		}
	}
}
