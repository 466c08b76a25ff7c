package buildhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/koordynuj/koordynuj-api/pkg/httpclient"
	"github.com/koordynuj/koordynuj-api/pkg/logger"
	"github.com/koordynuj/koordynuj-api/pkg/metrics"
	"go.uber.org/zap"
)

// Trigger fires a static-site rebuild by POSTing to a hosting build hook.
// Netlify build hooks take an empty body and respond with HTTP-ok on success.
type Trigger struct {
	url        string
	httpClient httpclient.Client
}

// NewTrigger creates a new build-hook trigger
func NewTrigger(url string, httpClient httpclient.Client) *Trigger {
	return &Trigger{
		url:        url,
		httpClient: httpClient,
	}
}

// Fire issues a single POST to the build hook. Exactly one attempt per call;
// rebuilds are idempotent so redelivered webhooks simply fire again.
func (t *Trigger) Fire(ctx context.Context) error {
	if t.url == "" {
		return fmt.Errorf("build hook URL not configured")
	}

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, nil)
	if err != nil {
		return fmt.Errorf("failed to create build hook request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		metrics.ObserveOutboundCall("buildhook", "fire", "error", start)
		return fmt.Errorf("failed to call build hook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.ObserveOutboundCall("buildhook", "fire", "error", start)
		return fmt.Errorf("build hook returned status %d", resp.StatusCode)
	}

	metrics.ObserveOutboundCall("buildhook", "fire", "success", start)
	logger.LogOutboundCall("buildhook", "fire", "success", time.Since(start).Seconds(),
		zap.Int("status_code", resp.StatusCode))

	return nil
}
