package domain

// Stable, caller-facing failure reasons. Precondition failures are never
// retried; transient failures surface only as the generic gateway reason
// because no decisive answer was obtained.
const (
	ReasonAccountNotFound   = "Account not found"
	ReasonGatewayError      = "Gateway error or invalid response"
	ReasonNegativeAmount    = "Amount must be non-negative"
	ReasonInsufficientFunds = "Insufficient funds"
	ReasonCancelled         = "cancelled"
)

// GatewayFailureReason builds the reason for a confirmed decline.
func GatewayFailureReason(message string) string {
	return "Gateway failure: " + message
}
