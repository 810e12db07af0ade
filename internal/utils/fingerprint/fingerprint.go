package fingerprint

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/anahush1701/payment-resilience/internal/domain"
)

func Compute(req domain.ChargeRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}
