package gateway

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/anahush1701/payment-resilience/internal/domain"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseBackoff = time.Second
)

// sleepFunc suspends the current flow for d, or returns early with the
// context's error when it is cancelled. Injected in tests.
type sleepFunc func(ctx context.Context, d time.Duration) error

// Executor drives the gateway client through bounded attempts with
// exponential backoff. It stops on the first decisive outcome: a confirmed
// decline is a final answer and retrying it would be semantically wrong.
// Transport failures and unparseable bodies are transient and retried.
type Executor struct {
	client      domain.GatewayClient
	maxAttempts int
	baseBackoff time.Duration
	sleep       sleepFunc
}

func NewExecutor(client domain.GatewayClient, maxAttempts int, baseBackoff time.Duration) *Executor {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	if baseBackoff <= 0 {
		baseBackoff = DefaultBaseBackoff
	}
	return &Executor{
		client:      client,
		maxAttempts: maxAttempts,
		baseBackoff: baseBackoff,
		sleep:       contextSleep,
	}
}

// Execute never returns an error: every failure mode of the underlying
// call is classified into an outcome. On exhaustion it returns the last
// transient outcome observed.
func (e *Executor) Execute(ctx context.Context, req domain.ChargeRequest) domain.GatewayOutcome {
	last := domain.TransportFailureOutcome(errors.New("no gateway attempt made"))

	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		if attempt > 1 {
			delay := e.backoff(attempt)
			log.Printf("gateway attempt %d/%d in %s for account %d", attempt, e.maxAttempts, delay, req.AccountID)
			if err := e.sleep(ctx, delay); err != nil {
				return domain.TransportFailureOutcome(err)
			}
		}

		statusCode, rawBody, err := e.client.Send(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return domain.TransportFailureOutcome(ctx.Err())
			}
			log.Printf("gateway call failed (attempt %d/%d): %v", attempt, e.maxAttempts, err)
			last = domain.TransportFailureOutcome(err)
			continue
		}

		outcome := ParseResponse(statusCode, rawBody)
		if outcome.Decisive() {
			return outcome
		}

		switch outcome.Kind {
		case domain.OutcomeUnparseable:
			log.Printf("gateway returned unparseable body (attempt %d/%d): %q", attempt, e.maxAttempts, outcome.RawBody)
		case domain.OutcomeTransportFailure:
			log.Printf("gateway transport failure (attempt %d/%d): %v", attempt, e.maxAttempts, outcome.Cause)
		}
		last = outcome
	}

	return last
}

// backoff returns the delay before the given attempt: base doubling per
// failed attempt, so attempt 2 waits 2 units and attempt 3 waits 4.
func (e *Executor) backoff(attempt int) time.Duration {
	return e.baseBackoff << uint(attempt-1)
}

func contextSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
