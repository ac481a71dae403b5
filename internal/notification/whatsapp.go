package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// MaxMessageLength mirrors the provider's limit for a single text message.
const MaxMessageLength = 4096

var phonePattern = regexp.MustCompile(`^\+\d{10,15}$`)

// NormalizePhoneNumber converts Indonesian local formats to E.164-ish form:
// "08xx" becomes "+628xx", a bare "62..." gets a "+", anything else without
// a leading "+" is assumed local and prefixed with "+62". Spaces, dashes and
// parentheses are stripped first.
func NormalizePhoneNumber(raw string) (string, error) {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return "", fmt.Errorf("empty phone number")
	}

	switch {
	case strings.HasPrefix(cleaned, "+"):
		// keep as is
	case strings.HasPrefix(cleaned, "08"):
		cleaned = "+62" + cleaned[1:]
	case strings.HasPrefix(cleaned, "62"):
		cleaned = "+" + cleaned
	default:
		cleaned = "+62" + cleaned
	}

	if !phonePattern.MatchString(cleaned) {
		return "", fmt.Errorf("invalid phone number %q", raw)
	}
	return cleaned, nil
}

// SendResult reports the outcome of one delivery attempt.
type SendResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Provider sends a WhatsApp text message to a normalized phone number.
// Delivery is best effort: callers log failures but never fail their own
// operation over them.
type Provider interface {
	Send(ctx context.Context, phone, message string) SendResult
}

type httpProvider struct {
	apiURL     string
	token      string
	httpClient *http.Client
}

// NewHTTPProvider builds a Provider that POSTs to a WhatsApp HTTP gateway.
func NewHTTPProvider(apiURL, token string) Provider {
	return &httpProvider{
		apiURL: apiURL,
		token:  token,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type gatewayRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type gatewayResponse struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}

func (p *httpProvider) Send(ctx context.Context, phone, message string) SendResult {
	body, err := json.Marshal(gatewayRequest{Phone: phone, Message: message})
	if err != nil {
		return SendResult{Error: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(body))
	if err != nil {
		return SendResult{Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return SendResult{Error: err.Error()}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return SendResult{Error: fmt.Sprintf("gateway returned %d", resp.StatusCode)}
	}

	var gwResp gatewayResponse
	_ = json.Unmarshal(respBody, &gwResp)

	return SendResult{Success: true, MessageID: gwResp.MessageID}
}
