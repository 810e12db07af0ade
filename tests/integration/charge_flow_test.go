package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anahush1701/payment-resilience/internal/application/use_cases"
	"github.com/anahush1701/payment-resilience/internal/domain"
	apperrors "github.com/anahush1701/payment-resilience/internal/domain/errors"
	"github.com/anahush1701/payment-resilience/internal/infrastructure/gateway"
	gormdb "github.com/anahush1701/payment-resilience/internal/infrastructure/gorm"
	"github.com/anahush1701/payment-resilience/internal/infrastructure/gorm/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway serves scripted responses in order, repeating the last one,
// and counts every call.
type fakeGateway struct {
	mu        sync.Mutex
	calls     atomic.Int32
	responses []fakeResponse
}

type fakeResponse struct {
	status int
	body   string
}

func (g *fakeGateway) handler(w http.ResponseWriter, _ *http.Request) {
	n := int(g.calls.Add(1)) - 1

	g.mu.Lock()
	idx := n
	if idx >= len(g.responses) {
		idx = len(g.responses) - 1
	}
	resp := g.responses[idx]
	g.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}

type testEnv struct {
	charge    *use_cases.ChargeAccountUseCase
	getByKey  *use_cases.GetByIdempotencyKeyUseCase
	getPaym   *use_cases.GetPaymentUseCase
	accounts  domain.AccountStore
	gateway   *fakeGateway
}

func setupIntegration(t *testing.T, responses ...fakeResponse) *testEnv {
	return setupIntegrationTTL(t, 24*time.Hour, responses...)
}

func setupIntegrationTTL(t *testing.T, keyTTL time.Duration, responses ...fakeResponse) *testEnv {
	t.Helper()

	db, err := gormdb.NewTestConnection()
	require.NoError(t, err)

	fg := &fakeGateway{responses: responses}
	server := httptest.NewServer(http.HandlerFunc(fg.handler))
	t.Cleanup(server.Close)

	accountRepo := repositories.NewAccountRepo(db)
	paymentRepo := repositories.NewPaymentRepo(db)
	idempotencyRepo := repositories.NewIdempotencyRepo(db)

	client := gateway.NewHTTPClient(server.URL, time.Second)
	executor := gateway.NewExecutor(client, 3, time.Millisecond)

	ctx := context.Background()
	require.NoError(t, accountRepo.Put(ctx, &domain.Account{ID: 1, Balance: decimal.NewFromInt(5000)}))
	require.NoError(t, accountRepo.Put(ctx, &domain.Account{ID: 2, Balance: decimal.Zero}))

	return &testEnv{
		charge:   use_cases.NewChargeAccountUseCase(db, accountRepo, paymentRepo, idempotencyRepo, executor, keyTTL, 0),
		getByKey: use_cases.NewGetByIdempotencyKeyUseCase(idempotencyRepo),
		getPaym:  use_cases.NewGetPaymentUseCase(paymentRepo),
		accounts: accountRepo,
		gateway:  fg,
	}
}

func successResponse() fakeResponse {
	return fakeResponse{status: http.StatusOK, body: `{"Success":true,"Message":"approved"}`}
}

func chargeOf(accountID int64, amount int64) domain.ChargeRequest {
	return domain.ChargeRequest{AccountID: accountID, Amount: decimal.NewFromInt(amount)}
}

func TestChargeFlow_ConfirmedSuccessDebitsBalance(t *testing.T) {
	env := setupIntegration(t, successResponse())
	ctx := context.Background()

	payment, err := env.charge.Execute(ctx, "", chargeOf(1, 1200))
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentStatusSucceeded, payment.Status)
	assert.True(t, payment.NewBalance.Equal(decimal.NewFromInt(3800)))
	assert.Equal(t, int32(1), env.gateway.calls.Load())

	account, err := env.accounts.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(3800)))
}

func TestChargeFlow_UnknownAccountSkipsGateway(t *testing.T) {
	env := setupIntegration(t, successResponse())

	payment, err := env.charge.Execute(context.Background(), "", chargeOf(999, 100))
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentStatusFailed, payment.Status)
	assert.Equal(t, "Account not found", payment.FailReason)
	assert.Equal(t, int32(0), env.gateway.calls.Load(), "no gateway call for an unknown account")
}

func TestChargeFlow_InsufficientFundsAfterConfirmation(t *testing.T) {
	env := setupIntegration(t, successResponse())
	ctx := context.Background()

	payment, err := env.charge.Execute(ctx, "", chargeOf(2, 50))
	require.NoError(t, err)

	assert.Equal(t, "Insufficient funds", payment.FailReason)

	account, err := env.accounts.Get(ctx, 2)
	require.NoError(t, err)
	assert.True(t, account.Balance.IsZero(), "failed charge must not mutate the balance")
}

func TestChargeFlow_NegativeAmountAfterConfirmation(t *testing.T) {
	env := setupIntegration(t, successResponse())

	payment, err := env.charge.Execute(context.Background(), "", chargeOf(1, -10))
	require.NoError(t, err)

	assert.Equal(t, "Amount must be non-negative", payment.FailReason)
	assert.Equal(t, int32(1), env.gateway.calls.Load(), "the gateway is consulted before local validation")
}

func TestChargeFlow_ConfirmedDeclineIsNotRetried(t *testing.T) {
	env := setupIntegration(t, fakeResponse{
		status: http.StatusOK,
		body:   `{"Success":false,"Message":"card declined"}`,
	})
	ctx := context.Background()

	payment, err := env.charge.Execute(ctx, "", chargeOf(1, 100))
	require.NoError(t, err)

	assert.Equal(t, "Gateway failure: card declined", payment.FailReason)
	assert.Equal(t, int32(1), env.gateway.calls.Load(), "a decisive decline makes exactly one attempt")

	account, err := env.accounts.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(5000)))
}

func TestChargeFlow_TransientFailuresRetriedThenSucceed(t *testing.T) {
	env := setupIntegration(t,
		fakeResponse{status: http.StatusServiceUnavailable, body: "try later"},
		fakeResponse{status: http.StatusOK, body: ""},
		successResponse(),
	)

	payment, err := env.charge.Execute(context.Background(), "", chargeOf(1, 1200))
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentStatusSucceeded, payment.Status)
	assert.Equal(t, int32(3), env.gateway.calls.Load())
	assert.True(t, payment.NewBalance.Equal(decimal.NewFromInt(3800)))
}

func TestChargeFlow_ExhaustedRetriesFailWithoutMutation(t *testing.T) {
	env := setupIntegration(t, fakeResponse{status: http.StatusOK, body: "%% not json %%"})
	ctx := context.Background()

	payment, err := env.charge.Execute(ctx, "", chargeOf(1, 100))
	require.NoError(t, err)

	assert.Equal(t, "Gateway error or invalid response", payment.FailReason)
	assert.Equal(t, int32(3), env.gateway.calls.Load())

	account, err := env.accounts.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(5000)))
}

func TestChargeFlow_IdempotentReplayDoesNotDoubleCharge(t *testing.T) {
	env := setupIntegration(t, successResponse())
	ctx := context.Background()

	first, err := env.charge.Execute(ctx, "replay-key", chargeOf(1, 1200))
	require.NoError(t, err)
	require.Equal(t, domain.PaymentStatusSucceeded, first.Status)

	second, err := env.charge.Execute(ctx, "replay-key", chargeOf(1, 1200))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "replay returns the cached payment")
	assert.Equal(t, int32(1), env.gateway.calls.Load(), "replay makes no second gateway call")

	account, err := env.accounts.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(3800)), "balance debited exactly once")
}

func TestChargeFlow_ExpiredKeyIsReprocessed(t *testing.T) {
	env := setupIntegrationTTL(t, 20*time.Millisecond, successResponse())
	ctx := context.Background()

	first, err := env.charge.Execute(ctx, "ttl-key", chargeOf(1, 100))
	require.NoError(t, err)
	require.Equal(t, domain.PaymentStatusSucceeded, first.Status)

	time.Sleep(50 * time.Millisecond)

	second, err := env.charge.Execute(ctx, "ttl-key", chargeOf(1, 100))
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentStatusSucceeded, second.Status)
	assert.NotEqual(t, first.ID, second.ID, "an expired key is a fresh request, not a replay")
	assert.Equal(t, int32(2), env.gateway.calls.Load())

	account, err := env.accounts.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(4800)), "both charges debit")
}

func TestChargeFlow_IdempotencyKeyConflict(t *testing.T) {
	env := setupIntegration(t, successResponse())
	ctx := context.Background()

	_, err := env.charge.Execute(ctx, "conflict-key", chargeOf(1, 100))
	require.NoError(t, err)

	_, err = env.charge.Execute(ctx, "conflict-key", chargeOf(1, 200))

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, "IDEMPOTENCY_KEY_CONFLICT", appErr.Code)
}

func TestChargeFlow_IdempotencyRecordRetrievable(t *testing.T) {
	env := setupIntegration(t, successResponse())
	ctx := context.Background()

	payment, err := env.charge.Execute(ctx, "lookup-key", chargeOf(1, 100))
	require.NoError(t, err)

	record, err := env.getByKey.Execute(ctx, "lookup-key")
	require.NoError(t, err)
	assert.Equal(t, domain.IdempotencyStatusCompleted, record.Status)
	assert.Equal(t, payment.ID, record.PaymentID)

	found, err := env.getPaym.Execute(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.ID, found.ID)
}

func TestChargeFlow_CancelledContext(t *testing.T) {
	env := setupIntegration(t, successResponse())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	payment, err := env.charge.Execute(ctx, "", chargeOf(1, 100))
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentStatusFailed, payment.Status)
	assert.Equal(t, "cancelled", payment.FailReason)

	account, err := env.accounts.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(5000)), "no mutation on cancellation")
}

func TestChargeFlow_ConcurrentChargesOnSameAccount(t *testing.T) {
	env := setupIntegration(t, successResponse())
	ctx := context.Background()

	const workers = 10
	amount := int64(100)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			payment, err := env.charge.Execute(ctx, "", chargeOf(1, amount))
			assert.NoError(t, err)
			assert.Equal(t, domain.PaymentStatusSucceeded, payment.Status)
		}()
	}
	wg.Wait()

	account, err := env.accounts.Get(ctx, 1)
	require.NoError(t, err)
	want := decimal.NewFromInt(5000 - workers*amount)
	assert.True(t, account.Balance.Equal(want),
		"final balance must equal initial minus the sum of all charges, got %s", account.Balance)
}
