package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Verifier confirms a checkout reference against the payment provider
// before a submission may be persisted. The create flow refuses to trust
// the client-supplied reference on its own.
type Verifier interface {
	Verify(ctx context.Context, reference string, amount float64) error
}

var (
	ErrMissingReference = errors.New("missing payment reference")
	ErrNotVerified      = errors.New("payment could not be verified")
)

// PaystackClient checks a transaction reference against the Paystack
// verification API. Amounts on the wire are in the currency's subunit.
type PaystackClient struct {
	secretKey string
	baseURL   string
	client    *http.Client
	logger    *zap.Logger
}

func NewPaystackClient(secretKey, baseURL string, logger *zap.Logger) *PaystackClient {
	return &PaystackClient{
		secretKey: secretKey,
		baseURL:   baseURL,
		client:    &http.Client{Timeout: 15 * time.Second},
		logger:    logger,
	}
}

type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status   string `json:"status"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	} `json:"data"`
}

func (c *PaystackClient) Verify(ctx context.Context, reference string, amount float64) error {
	if reference == "" {
		return ErrMissingReference
	}

	url := fmt.Sprintf("%s/transaction/verify/%s", c.baseURL, reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("paystack verify request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("paystack verify returned non-200",
			zap.String("reference", reference),
			zap.Int("status", resp.StatusCode))
		return ErrNotVerified
	}

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode verify response: %w", err)
	}

	if !body.Status || body.Data.Status != "success" {
		c.logger.Warn("paystack transaction not successful",
			zap.String("reference", reference),
			zap.String("transaction_status", body.Data.Status))
		return ErrNotVerified
	}

	// Paystack reports amounts in subunits (kobo for NGN).
	if body.Data.Amount < int64(amount*100) {
		c.logger.Warn("paystack amount below package price",
			zap.String("reference", reference),
			zap.Int64("paid", body.Data.Amount),
			zap.Float64("expected", amount*100))
		return ErrNotVerified
	}

	return nil
}

// NoopVerifier accepts every reference. Wired in when no Paystack secret is
// configured so local development works without a checkout round trip.
type NoopVerifier struct {
	Logger *zap.Logger
}

func (v NoopVerifier) Verify(_ context.Context, reference string, _ float64) error {
	if v.Logger != nil {
		v.Logger.Warn("payment verification disabled, accepting reference as-is",
			zap.String("reference", reference))
	}
	return nil
}
