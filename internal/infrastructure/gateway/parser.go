package gateway

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anahush1701/payment-resilience/internal/domain"
)

type gatewayResponse struct {
	Success bool   `json:"Success"`
	Message string `json:"Message"`
}

// ParseResponse classifies one raw gateway response into an outcome. It is
// total: every input, however malformed, maps to a defined variant. Empty
// and non-JSON bodies are handled inputs, not faults.
func ParseResponse(statusCode int, rawBody []byte) domain.GatewayOutcome {
	if statusCode < 200 || statusCode >= 300 {
		return domain.TransportFailureOutcome(fmt.Errorf("gateway returned status %d", statusCode))
	}

	body := string(rawBody)
	if strings.TrimSpace(body) == "" {
		return domain.UnparseableOutcome(body)
	}

	// The pointer target catches a top-level JSON null, which unmarshals
	// without error but carries no verdict.
	var resp *gatewayResponse
	if err := json.Unmarshal(rawBody, &resp); err != nil || resp == nil {
		return domain.UnparseableOutcome(body)
	}

	return domain.ConfirmedOutcome(resp.Success, resp.Message)
}
