// Package payment drives the hosted card checkout: session creation against
// the external gateway, confirmation on return, and the reconciliation
// context that bridges the two.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// CheckoutSession is the gateway's view of one hosted checkout attempt.
type CheckoutSession struct {
	ID              string `json:"id"`
	URL             string `json:"url"`
	PaymentStatus   string `json:"payment_status"`
	AmountTotal     int64  `json:"amount_total"` // minor currency units
	PaymentIntentID string `json:"payment_intent_id"`
}

type CreateSessionParams struct {
	AmountMinor int64  `json:"amount"`
	Currency    string `json:"currency"`
	Name        string `json:"name"`
	Description string `json:"description"`
	SuccessURL  string `json:"success_url"`
	CancelURL   string `json:"cancel_url"`
}

// Gateway is the opaque payment collaborator. Its API shape is dictated
// externally; the core only needs create and status lookup.
type Gateway interface {
	CreateSession(ctx context.Context, p CreateSessionParams) (*CheckoutSession, error)
	GetSession(ctx context.Context, id string) (*CheckoutSession, error)
}

type HTTPGateway struct {
	HTTP    *http.Client
	BaseURL string
	Secret  string
}

func NewHTTPGateway(baseURL, secret string) *HTTPGateway {
	return &HTTPGateway{
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		BaseURL: baseURL,
		Secret:  secret,
	}
}

func (g *HTTPGateway) CreateSession(ctx context.Context, p CreateSessionParams) (*CheckoutSession, error) {
	body, _ := json.Marshal(p)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/checkout/sessions", g.BaseURL), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.Secret)

	res, err := g.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("gateway create session: %s", res.Status)
	}
	var s CheckoutSession
	if err := json.NewDecoder(res.Body).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (g *HTTPGateway) GetSession(ctx context.Context, id string) (*CheckoutSession, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/checkout/sessions/%s", g.BaseURL, id), nil)
	req.Header.Set("Authorization", "Bearer "+g.Secret)

	res, err := g.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("gateway session not found")
	default:
		return nil, fmt.Errorf("gateway get session: %s", res.Status)
	}
	var s CheckoutSession
	if err := json.NewDecoder(res.Body).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
