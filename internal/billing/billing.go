// Package billing talks to the hosted subscription service. Whether a
// user is premium is an opaque fact fetched from here, never computed
// locally.
package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrNotConfigured is returned when no billing endpoint is set.
	ErrNotConfigured = errors.New("billing service not configured")
)

// Offering is one purchasable subscription package.
type Offering struct {
	ID          string `json:"identifier"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceString string `json:"price_string"`
}

// Entitlement is an active grant on a subscriber.
type Entitlement struct {
	ID        string     `json:"identifier"`
	ExpiresAt *time.Time `json:"expires_date,omitempty"`
}

// Subscriber is the billing service's view of a user.
type Subscriber struct {
	UserID       string                 `json:"app_user_id"`
	Entitlements map[string]Entitlement `json:"entitlements"`
}

// Client is a thin REST client for the billing service.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c.baseURL == "" {
		return ErrNotConfigured
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("billing request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("billing service returned %s", resp.Status)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode billing response: %w", err)
		}
	}
	return nil
}

// Offerings returns the purchasable packages.
func (c *Client) Offerings(ctx context.Context) ([]Offering, error) {
	var out struct {
		Offerings []Offering `json:"offerings"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/offerings", nil, &out); err != nil {
		return nil, err
	}
	return out.Offerings, nil
}

// Subscriber fetches the billing view of the given user.
func (c *Client) Subscriber(ctx context.Context, userID string) (Subscriber, error) {
	var out struct {
		Subscriber Subscriber `json:"subscriber"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/subscribers/"+userID, nil, &out); err != nil {
		return Subscriber{}, err
	}
	return out.Subscriber, nil
}

// IsPremium reports whether the user holds an unexpired "premium"
// entitlement.
func (c *Client) IsPremium(ctx context.Context, userID string) (bool, error) {
	sub, err := c.Subscriber(ctx, userID)
	if err != nil {
		return false, err
	}
	ent, ok := sub.Entitlements["premium"]
	if !ok {
		return false, nil
	}
	if ent.ExpiresAt != nil && ent.ExpiresAt.Before(time.Now()) {
		return false, nil
	}
	return true, nil
}

// Purchase submits a purchase receipt for the given offering.
func (c *Client) Purchase(ctx context.Context, userID, offeringID, receipt string) error {
	body := map[string]string{
		"app_user_id": userID,
		"offering_id": offeringID,
		"receipt":     receipt,
	}
	return c.do(ctx, http.MethodPost, "/v1/receipts", body, nil)
}

// Restore asks the billing service to re-link past purchases.
func (c *Client) Restore(ctx context.Context, userID string) (Subscriber, error) {
	var out struct {
		Subscriber Subscriber `json:"subscriber"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/subscribers/"+userID+"/restore", nil, &out); err != nil {
		return Subscriber{}, err
	}
	return out.Subscriber, nil
}
