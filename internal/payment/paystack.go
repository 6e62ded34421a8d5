package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"campusbooks-backend/internal/logger"
)

// PaystackClient talks to a Paystack-compatible transfer API over HTTPS.
type PaystackClient struct {
	baseURL   string
	secretKey string
	http      *http.Client
}

func NewPaystackClient(baseURL, secretKey string, timeout time.Duration) *PaystackClient {
	return &PaystackClient{
		baseURL:   baseURL,
		secretKey: secretKey,
		http:      &http.Client{Timeout: timeout},
	}
}

// apiEnvelope is the provider's common response wrapper.
type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *PaystackClient) CreateRecipient(ctx context.Context, req *RecipientRequest) (*RecipientResponse, error) {
	body := map[string]interface{}{
		"type":           req.Type,
		"name":           req.Name,
		"account_number": req.AccountNumber,
		"bank_code":      req.BankCode,
		"currency":       req.Currency,
	}
	env, err := c.post(ctx, "/transferrecipient", body)
	if err != nil {
		return nil, err
	}

	resp := &RecipientResponse{Status: env.Status, Message: env.Message}
	if env.Status && len(env.Data) > 0 {
		var data struct {
			RecipientCode string `json:"recipient_code"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("decode recipient response: %w", err)
		}
		resp.RecipientCode = data.RecipientCode
	}
	return resp, nil
}

func (c *PaystackClient) InitiateTransfer(ctx context.Context, req *TransferRequest) (*TransferResponse, error) {
	body := map[string]interface{}{
		"source":    "balance",
		"recipient": req.RecipientCode,
		"amount":    req.AmountSubunit,
		"reason":    req.Reason,
		"reference": req.Reference,
	}
	env, err := c.post(ctx, "/transfer", body)
	if err != nil {
		return nil, err
	}

	resp := &TransferResponse{Status: env.Status, Message: env.Message}
	if env.Status && len(env.Data) > 0 {
		var data struct {
			TransferCode string `json:"transfer_code"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("decode transfer response: %w", err)
		}
		resp.TransferCode = data.TransferCode
	}
	return resp, nil
}

func (c *PaystackClient) VerifyTransfer(ctx context.Context, transferCode string) (*TransferStatusResponse, error) {
	env, err := c.get(ctx, "/transfer/"+transferCode)
	if err != nil {
		return nil, err
	}

	resp := &TransferStatusResponse{Status: env.Status, Message: env.Message}
	if env.Status && len(env.Data) > 0 {
		var data struct {
			Status string `json:"status"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("decode transfer status: %w", err)
		}
		resp.TransferStatus = data.Status
	}
	return resp, nil
}

func (c *PaystackClient) post(ctx context.Context, path string, body map[string]interface{}) (*apiEnvelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path)
}

func (c *PaystackClient) get(ctx context.Context, path string) (*apiEnvelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req, path)
}

func (c *PaystackClient) do(req *http.Request, path string) (*apiEnvelope, error) {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	logger.ExternalServiceCall("paystack", path)
	resp, err := c.http.Do(req)
	logger.ExternalServiceResult("paystack", path, err)
	if err != nil {
		return nil, fmt.Errorf("payment provider request failed: %w", err)
	}
	defer resp.Body.Close()

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("payment provider returned malformed response (HTTP %d): %w", resp.StatusCode, err)
	}
	// The provider signals API-level failures (HTTP 4xx) through the
	// envelope's status/message; pass those through rather than erroring.
	return &env, nil
}
