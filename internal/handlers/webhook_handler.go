package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/koordynuj/koordynuj-api/internal/models"
	"github.com/koordynuj/koordynuj-api/internal/services"
)

type WebhookHandler struct {
	service     services.RebuildServiceInterface
	serviceName string
}

func NewWebhookHandler(service services.RebuildServiceInterface, serviceName string) *WebhookHandler {
	return &WebhookHandler{service: service, serviceName: serviceName}
}

// HandleStrapiEvent handles POST /api/v1/webhook/strapi
func (h *WebhookHandler) HandleStrapiEvent(c *gin.Context) {
	var event models.WebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		respondError(c, http.StatusBadRequest,
			models.WebhookResponse{Status: "error", Message: "Nieprawidłowy payload."}, err)
		return
	}

	resp, err := h.service.HandleEvent(c.Request.Context(), &event)
	if err != nil {
		respondError(c, http.StatusInternalServerError, resp, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Health handles GET /api/v1/webhook/strapi, used for uptime checks
func (h *WebhookHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.WebhookHealthResponse{
		Service:   h.serviceName,
		Status:    "active",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
