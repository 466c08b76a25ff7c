package resend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/koordynuj/koordynuj-api/pkg/httpclient"
	"github.com/koordynuj/koordynuj-api/pkg/logger"
	"github.com/koordynuj/koordynuj-api/pkg/metrics"
	"go.uber.org/zap"
)

const emailsEndpoint = "https://api.resend.com/emails"

// Message represents a transactional email to send through Resend
type Message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	ReplyTo string   `json:"reply_to,omitempty"`
	HTML    string   `json:"html"`
}

// sendResponse represents Resend's response to a send request
type sendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Client handles sending email through the Resend API
type Client struct {
	apiKey     string
	endpoint   string
	httpClient httpclient.Client
}

// NewClient creates a new Resend client
func NewClient(apiKey string, httpClient httpclient.Client) *Client {
	return &Client{
		apiKey:     apiKey,
		endpoint:   emailsEndpoint,
		httpClient: httpClient,
	}
}

// NewClientWithEndpoint creates a client against a custom endpoint (used in tests)
func NewClientWithEndpoint(apiKey, endpoint string, httpClient httpclient.Client) *Client {
	return &Client{
		apiKey:     apiKey,
		endpoint:   endpoint,
		httpClient: httpClient,
	}
}

// Send delivers a single email. The call is attempted exactly once; retry
// responsibility sits with the caller of the enclosing endpoint.
func (c *Client) Send(msg *Message) error {
	start := time.Now()

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveOutboundCall("resend", "send", "error", start)
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.ObserveOutboundCall("resend", "send", "error", start)
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("resend returned status %d: %s", resp.StatusCode, string(body))
	}

	var result sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		// Delivery was accepted, only the response body was unreadable
		logger.Warn("Failed to decode Resend response", zap.Error(err))
	}

	metrics.ObserveOutboundCall("resend", "send", "success", start)
	logger.LogOutboundCall("resend", "send", "success", time.Since(start).Seconds(),
		zap.String("email_id", result.ID),
		zap.Strings("to", msg.To))

	return nil
}
