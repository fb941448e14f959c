package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPMessageGateway implements message sending via a JSON-over-HTTP
// messaging provider
type HTTPMessageGateway struct {
	apiURL string
	apiKey string
	client *http.Client
}

// HTTPMessageConfig holds configuration for the HTTP message gateway
type HTTPMessageConfig struct {
	APIURL string
	APIKey string
}

// NewHTTPMessageGateway creates a new HTTP message gateway client
func NewHTTPMessageGateway(config HTTPMessageConfig) *HTTPMessageGateway {
	return &HTTPMessageGateway{
		apiURL: config.APIURL,
		apiKey: config.APIKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// sendMessageRequest represents the provider's send request structure
type sendMessageRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// sendMessageResponse represents the provider's send response structure
type sendMessageResponse struct {
	Status  string `json:"status"`
	Comment string `json:"comment,omitempty"`
	ErrCode string `json:"err_code,omitempty"`
}

// SendMessage sends a short text message to a phone number
func (g *HTTPMessageGateway) SendMessage(phone, message string) error {
	payload := sendMessageRequest{
		To:      phone,
		Message: message,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message request: %w", err)
	}

	url := fmt.Sprintf("%s/messages", g.apiURL)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create message request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("message request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read message response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("message gateway returned HTTP %d: %s", resp.StatusCode, string(body))
	}

	var result sendMessageResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse message response: %w", err)
	}

	if result.Status != "success" {
		return fmt.Errorf("message gateway rejected send: %s (%s)", result.Comment, result.ErrCode)
	}

	return nil
}

// GetName returns the gateway name
func (g *HTTPMessageGateway) GetName() string {
	return "HTTP"
}
