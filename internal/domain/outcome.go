package domain

import (
	"github.com/shopspring/decimal"
)

type OutcomeKind string

const (
	// OutcomeConfirmed means the gateway answered with a structurally valid
	// response. It is the only decisive kind: a confirmed decline is final
	// and must not be retried.
	OutcomeConfirmed OutcomeKind = "CONFIRMED"
	// OutcomeUnparseable means the body was empty, whitespace, or failed
	// structural decoding.
	OutcomeUnparseable OutcomeKind = "UNPARSEABLE"
	// OutcomeTransportFailure means the call itself failed: connection
	// error, timeout, cancellation, or a non-2xx status.
	OutcomeTransportFailure OutcomeKind = "TRANSPORT_FAILURE"
)

// GatewayOutcome classifies one gateway attempt. Absence of information is
// itself a variant, never a nil.
type GatewayOutcome struct {
	Kind    OutcomeKind
	Success bool
	Message string
	RawBody string
	Cause   error
}

func ConfirmedOutcome(success bool, message string) GatewayOutcome {
	return GatewayOutcome{Kind: OutcomeConfirmed, Success: success, Message: message}
}

func UnparseableOutcome(rawBody string) GatewayOutcome {
	return GatewayOutcome{Kind: OutcomeUnparseable, RawBody: rawBody}
}

func TransportFailureOutcome(cause error) GatewayOutcome {
	return GatewayOutcome{Kind: OutcomeTransportFailure, Cause: cause}
}

// Decisive reports whether the outcome definitively answers the request.
// Transient outcomes (unparseable body, transport failure) are not decisive
// and are eligible for retry.
func (o GatewayOutcome) Decisive() bool {
	return o.Kind == OutcomeConfirmed
}

// PaymentResult is the final output of one charge. Immutable once built.
type PaymentResult struct {
	Succeeded  bool
	NewBalance decimal.Decimal
	Reason     string
}

func ResultSucceeded(newBalance decimal.Decimal) PaymentResult {
	return PaymentResult{Succeeded: true, NewBalance: newBalance}
}

func ResultFailed(reason string) PaymentResult {
	return PaymentResult{Reason: reason}
}
