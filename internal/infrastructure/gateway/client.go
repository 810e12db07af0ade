package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/anahush1701/payment-resilience/internal/domain"
	"github.com/shopspring/decimal"
)

type chargePayload struct {
	AccountID int64           `json:"AccountId"`
	Amount    decimal.Decimal `json:"Amount"`
}

// HTTPClient performs a single POST to the payment gateway. The per-attempt
// timeout lives on the underlying http.Client so one attempt can never
// block the retry loop indefinitely.
type HTTPClient struct {
	url    string
	client *http.Client
}

func NewHTTPClient(url string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Send(ctx context.Context, req domain.ChargeRequest) (int, []byte, error) {
	body, err := json.Marshal(chargePayload{
		AccountID: req.AccountID,
		Amount:    req.Amount,
	})
	if err != nil {
		return 0, nil, fmt.Errorf("encoding charge payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("building gateway request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading gateway response: %w", err)
	}

	return resp.StatusCode, rawBody, nil
}
