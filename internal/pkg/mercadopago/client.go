package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/proveo-app/proveo/internal/pkg/env"
)

const defaultAPIBaseURL = "https://api.mercadopago.com"

// MercadoPagoError carries the gateway status code so callers can decide
// whether a failure is retryable or a client mistake.
type MercadoPagoError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *MercadoPagoError) Error() string {
	return fmt.Sprintf("mercadopago %s failed: status=%d body=%s", e.Operation, e.StatusCode, e.Body)
}

type Client struct {
	AccessToken string
	APIBaseURL  string

	HTTPClient *http.Client
}

type AutoRecurring struct {
	CurrencyID        string  `json:"currency_id"`
	TransactionAmount float64 `json:"transaction_amount"`
	Frequency         int     `json:"frequency"`
	FrequencyType     string  `json:"frequency_type"`
}

type PreapprovalRequest struct {
	PayerEmail        string        `json:"payer_email"`
	Reason            string        `json:"reason"`
	BackURL           string        `json:"back_url"`
	ExternalReference string        `json:"external_reference"`
	AutoRecurring     AutoRecurring `json:"auto_recurring"`
}

type Preapproval struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
	PayerEmail       string `json:"payer_email"`
	Reason           string `json:"reason"`
}

// CheckoutURL prefers the production init point and falls back to the
// sandbox one when the account runs in test mode.
func (p *Preapproval) CheckoutURL() string {
	if strings.TrimSpace(p.InitPoint) != "" {
		return p.InitPoint
	}
	return p.SandboxInitPoint
}

func NewClientFromEnv() *Client {
	return &Client{
		AccessToken: strings.TrimSpace(env.GetEnv("MP_ACCESS_TOKEN", "")),
		APIBaseURL:  strings.TrimRight(strings.TrimSpace(env.GetEnv("MP_API_BASE_URL", defaultAPIBaseURL)), "/"),
		HTTPClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// IsConfigured reports whether an access token is present. Checkout falls
// back to manual subscriptions when the gateway is not configured.
func (c *Client) IsConfigured() bool {
	return strings.TrimSpace(c.AccessToken) != ""
}

func (c *Client) CreatePreapproval(ctx context.Context, reqBody PreapprovalRequest) (*Preapproval, error) {
	if !c.IsConfigured() {
		return nil, errors.New("MP_ACCESS_TOKEN is not configured")
	}
	if strings.TrimSpace(reqBody.PayerEmail) == "" {
		return nil, errors.New("payer email is required")
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIBaseURL+"/preapproval", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Idempotency-Key", uuid.NewString())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode >= 400 {
		return nil, &MercadoPagoError{Operation: "create_preapproval", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out Preapproval
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.ID) == "" {
		return nil, errors.New("mercadopago preapproval response missing id")
	}
	return &out, nil
}

func (c *Client) GetPreapproval(ctx context.Context, preapprovalID string) (*Preapproval, error) {
	if !c.IsConfigured() {
		return nil, errors.New("MP_ACCESS_TOKEN is not configured")
	}
	id := strings.TrimSpace(preapprovalID)
	if id == "" {
		return nil, errors.New("preapproval id is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIBaseURL+"/preapproval/"+id, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode >= 400 {
		return nil, &MercadoPagoError{Operation: "get_preapproval", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out Preapproval
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
