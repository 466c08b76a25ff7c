package services

import (
	"context"
	"fmt"

	"github.com/koordynuj/koordynuj-api/internal/models"
	"github.com/koordynuj/koordynuj-api/pkg/apperrors"
	"github.com/koordynuj/koordynuj-api/pkg/logger"
	"github.com/koordynuj/koordynuj-api/pkg/metrics"
	"go.uber.org/zap"
)

const msgContactProcessed = "Wiadomość kontaktowa przetworzona, przebudowa nie jest wymagana."

// rebuildTriggers lists the Strapi API IDs whose change rebuilds the site.
// Single types (settings, key sections) and collection types (dynamic content).
var rebuildTriggers = map[string]struct{}{
	"global-setting": {},
	"hero-section":   {},
	"case-study":     {},
	"contact-form":   {}, // contact page copy, not submitted messages

	"problem":        {},
	"service":        {},
	"process-step":   {},
	"blog-post":      {},
	"blog-category":  {},
	"legal-document": {},
}

// noRebuildModels lists models whose change must never rebuild. Contact
// submissions arrive with every form post and would cause rebuild storms.
var noRebuildModels = map[string]struct{}{
	"contact": {},
}

// RebuildService turns Strapi content-change events into build-hook calls,
// suppressing rebuilds for models that do not affect the rendered site.
type RebuildService struct {
	trigger BuildTrigger
}

// NewRebuildService creates a new rebuild dispatcher service
func NewRebuildService(trigger BuildTrigger) *RebuildService {
	return &RebuildService{trigger: trigger}
}

// HandleEvent classifies the event's model and conditionally fires a rebuild.
// The returned error is non-nil only when a known model's rebuild failed and
// the caller must surface a server error; an unknown model's outcome is
// reported in the response body alone.
func (s *RebuildService) HandleEvent(ctx context.Context, event *models.WebhookEvent) (*models.WebhookResponse, error) {
	logger.Info("Received Strapi webhook",
		zap.String("model", event.Model),
		zap.String("event", event.Event),
		zap.Int("entry_id", event.Entry.ID))

	if _, ok := noRebuildModels[event.Model]; ok {
		metrics.RebuildDecisions.WithLabelValues("skipped").Inc()
		logger.Info("Rebuild skipped for model", zap.String("model", event.Model))
		return &models.WebhookResponse{
			Status:  "processed",
			Rebuild: models.BoolPtr(false),
			Message: msgContactProcessed,
		}, nil
	}

	if _, ok := rebuildTriggers[event.Model]; ok {
		err := s.trigger.Fire(ctx)
		if err != nil {
			metrics.RebuildDecisions.WithLabelValues("trigger_failed").Inc()
			logger.Error("Failed to trigger rebuild",
				zap.Error(err),
				zap.String("model", event.Model))
			return &models.WebhookResponse{
				Status:  "processed",
				Rebuild: models.BoolPtr(true),
				Success: models.BoolPtr(false),
			}, apperrors.UpstreamError("buildhook", err)
		}

		metrics.RebuildDecisions.WithLabelValues("triggered").Inc()
		return &models.WebhookResponse{
			Status:  "processed",
			Rebuild: models.BoolPtr(true),
			Success: models.BoolPtr(true),
		}, nil
	}

	// Unknown model: rebuild anyway. A content type added in Strapi must not
	// silently stop triggering rebuilds because this list lags behind.
	metrics.RebuildDecisions.WithLabelValues("unknown_model").Inc()
	logger.Warn("Unknown model in webhook, triggering rebuild as a precaution",
		zap.String("model", event.Model))

	err := s.trigger.Fire(ctx)
	if err != nil {
		logger.Error("Failed to trigger precautionary rebuild",
			zap.Error(err),
			zap.String("model", event.Model))
	}

	return &models.WebhookResponse{
		Status:  "processed",
		Rebuild: models.BoolPtr(true),
		Success: models.BoolPtr(err == nil),
		Warning: fmt.Sprintf("Unknown model: %s", event.Model),
	}, nil
}
