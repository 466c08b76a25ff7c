package strapi

import (
	"bytes"
	"context"
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

// ContactRecord is the shape Strapi expects for the contact collection.
// Field names are the Strapi API IDs of the collection attributes.
type ContactRecord struct {
	ImieNazwisko     string `json:"imie_nazwisko"`
	Email            string `json:"email"`
	Telefon          string `json:"telefon,omitempty"`
	Wiadomosc        string `json:"wiadomosc"`
	StatusWiadomosci string `json:"status_wiadomosci"`
	IPAddress        string `json:"ip_address"`
	UserAgent        string `json:"user_agent"`
}

// createEnvelope wraps a record in Strapi's {"data": ...} write envelope
type createEnvelope struct {
	Data *ContactRecord `json:"data"`
}

// Client writes records to the Strapi REST API
type Client struct {
	baseURL    string
	token      string
	httpClient httpclient.Client
}

// NewClient creates a new Strapi write client
func NewClient(baseURL, token string, httpClient httpclient.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: httpClient,
	}
}

// CreateContact persists a contact submission to the Strapi contacts collection.
// Attempted exactly once; the caller decides whether a failure is fatal.
func (c *Client) CreateContact(ctx context.Context, record *ContactRecord) error {
	start := time.Now()

	payload, err := json.Marshal(createEnvelope{Data: record})
	if err != nil {
		return fmt.Errorf("failed to encode contact record: %w", err)
	}

	url := c.baseURL + "/api/contacts"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create Strapi request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveOutboundCall("strapi", "create_contact", "error", start)
		return fmt.Errorf("failed to call Strapi: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.ObserveOutboundCall("strapi", "create_contact", "error", start)
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("strapi returned status %d: %s", resp.StatusCode, string(body))
	}

	metrics.ObserveOutboundCall("strapi", "create_contact", "success", start)
	logger.LogOutboundCall("strapi", "create_contact", "success", time.Since(start).Seconds(),
		zap.String("email", record.Email))

	return nil
}
