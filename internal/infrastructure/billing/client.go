// Package billing implements the HTTP client for the external billing
// provider.
package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	domainBilling "github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/billing"
)

// Client talks to the provider's REST API. Amounts cross the wire as
// decimal values; internally everything stays in cents.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new billing provider client
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type createChargeRequest struct {
	Code          string  `json:"code"`
	PayerName     string  `json:"payer_name"`
	PayerDocument string  `json:"payer_document"`
	Amount        float64 `json:"amount"`
	DueDate       string  `json:"due_date"`
	Description   string  `json:"description"`
	SubAccount    string  `json:"sub_account,omitempty"`
}

type chargeResponse struct {
	ID            string `json:"id"`
	Barcode       string `json:"barcode"`
	DigitableLine string `json:"digitable_line"`
	PixCode       string `json:"pix_code"`
	PixQRImage    string `json:"pix_qr_image"`
}

type confirmedPaymentResponse struct {
	SubAccount string  `json:"sub_account"`
	Amount     float64 `json:"amount"`
	FeeAmount  float64 `json:"fee_amount"`
	NetAmount  float64 `json:"net_amount"`
	Status     string  `json:"status"`
}

type providerError struct {
	Message string `json:"message"`
}

// CreateCharge mints one boleto at the provider. The Code field is sent
// as the provider-side idempotency key, so a retried call with the same
// code returns the original charge.
func (c *Client) CreateCharge(ctx context.Context, input *domainBilling.CreateChargeInput) (*domainBilling.Charge, error) {
	payload := createChargeRequest{
		Code:          input.Code,
		PayerName:     input.PayerName,
		PayerDocument: input.PayerDocument,
		Amount:        float64(input.Amount) / 100,
		DueDate:       input.DueDate.Format("2006-01-02"),
		Description:   input.Description,
		SubAccount:    input.SubAccount,
	}

	var resp chargeResponse
	if err := c.do(ctx, http.MethodPost, "/v1/charges", payload, &resp); err != nil {
		return nil, err
	}

	return &domainBilling.Charge{
		ID:            resp.ID,
		Barcode:       resp.Barcode,
		DigitableLine: resp.DigitableLine,
		PixCode:       resp.PixCode,
		PixQRImage:    resp.PixQRImage,
	}, nil
}

// GetConfirmedPayment fetches a confirmed pix charge by its provider id.
func (c *Client) GetConfirmedPayment(ctx context.Context, chargeID string) (*domainBilling.ConfirmedPayment, error) {
	var resp confirmedPaymentResponse
	path := fmt.Sprintf("/v1/pix/%s", chargeID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	return &domainBilling.ConfirmedPayment{
		SubAccount: resp.SubAccount,
		Amount:     toCents(resp.Amount),
		FeeAmount:  toCents(resp.FeeAmount),
		NetAmount:  toCents(resp.NetAmount),
		Status:     resp.Status,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var provErr providerError
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(data, &provErr) == nil && provErr.Message != "" {
			return fmt.Errorf("billing provider returned %d: %s", resp.StatusCode, provErr.Message)
		}
		return fmt.Errorf("billing provider returned %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// toCents converts a decimal amount to cents, rounding half up.
func toCents(amount float64) int64 {
	if amount >= 0 {
		return int64(amount*100 + 0.5)
	}
	return int64(amount*100 - 0.5)
}
