package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/koordynuj/koordynuj-api/internal/models"
	"github.com/koordynuj/koordynuj-api/internal/services"
	"github.com/koordynuj/koordynuj-api/pkg/apperrors"
)

type ContactHandler struct {
	service services.ContactServiceInterface
}

func NewContactHandler(service services.ContactServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

// SubmitContact handles POST /api/v1/contact
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest,
			models.ContactResponse{Message: "Nieprawidłowe dane żądania."}, err)
		return
	}

	meta := extractRequestMeta(c)

	resp, err := h.service.Submit(c.Request.Context(), &req, meta)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrInvalidInput) {
			respondError(c, http.StatusBadRequest, resp, err)
			return
		}
		respondError(c, http.StatusInternalServerError, resp, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// extractRequestMeta captures client IP and user agent, defaulting to the
// "unknown" sentinel when a header is absent
func extractRequestMeta(c *gin.Context) models.RequestMeta {
	meta := models.RequestMeta{
		IPAddress: models.UnknownMeta,
		UserAgent: models.UnknownMeta,
	}

	// First hop of X-Forwarded-For is the original client
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			meta.IPAddress = ip
		}
	} else if ip := c.ClientIP(); ip != "" {
		meta.IPAddress = ip
	}

	if ua := c.Request.UserAgent(); ua != "" {
		meta.UserAgent = ua
	}

	return meta
}
