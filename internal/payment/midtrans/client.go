package midtrans

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	sandboxSnapURL    = "https://app.sandbox.midtrans.com/snap/v1/transactions"
	productionSnapURL = "https://app.midtrans.com/snap/v1/transactions"
)

// TransactionDetails identifies the order on the gateway side.
type TransactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

// CustomerDetails is shown on the hosted checkout page.
type CustomerDetails struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

// ItemDetails describes a checkout line item.
type ItemDetails struct {
	ID       string `json:"id"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
}

// SnapRequest is the Snap create-transaction payload.
type SnapRequest struct {
	TransactionDetails TransactionDetails `json:"transaction_details"`
	CustomerDetails    CustomerDetails    `json:"customer_details"`
	ItemDetails        []ItemDetails      `json:"item_details,omitempty"`
}

// SnapResponse is the hosted checkout handle returned by Snap.
type SnapResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

type snapErrorResponse struct {
	ErrorMessages []string `json:"error_messages"`
}

// Client talks to the Midtrans Snap API.
type Client struct {
	serverKey  string
	snapURL    string
	httpClient *http.Client
}

// NewClient builds a Snap client for the given environment ("sandbox" or
// "production").
func NewClient(serverKey, environment string) *Client {
	url := sandboxSnapURL
	if environment == "production" {
		url = productionSnapURL
	}
	return &Client{
		serverKey: serverKey,
		snapURL:   url,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Configured reports whether a server key is present.
func (c *Client) Configured() bool {
	return c.serverKey != ""
}

// ServerKey exposes the key for notification signature checks.
func (c *Client) ServerKey() string {
	return c.serverKey
}

// SetBaseURL overrides the Snap endpoint, for tests against a local server.
func (c *Client) SetBaseURL(url string) {
	c.snapURL = url
}

// CreateTransaction asks Snap for a checkout token and redirect URL.
func (c *Client) CreateTransaction(ctx context.Context, req SnapRequest) (*SnapResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal snap request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.snapURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build snap request: %w", err)
	}

	// Snap uses basic auth with the server key as username and empty password.
	auth := base64.StdEncoding.EncodeToString([]byte(c.serverKey + ":"))
	httpReq.Header.Set("Authorization", "Basic "+auth)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("snap request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read snap response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var snapErr snapErrorResponse
		if json.Unmarshal(respBody, &snapErr) == nil && len(snapErr.ErrorMessages) > 0 {
			return nil, fmt.Errorf("snap returned %d: %s", resp.StatusCode, snapErr.ErrorMessages[0])
		}
		return nil, fmt.Errorf("snap returned %d", resp.StatusCode)
	}

	var snapResp SnapResponse
	if err := json.Unmarshal(respBody, &snapResp); err != nil {
		return nil, fmt.Errorf("decode snap response: %w", err)
	}
	if snapResp.Token == "" {
		return nil, fmt.Errorf("snap response missing token")
	}

	return &snapResp, nil
}
