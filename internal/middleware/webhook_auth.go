package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/koordynuj/koordynuj-api/pkg/logger"
	"go.uber.org/zap"
)

// SignatureHeader is the header Strapi sends the shared webhook secret in
const SignatureHeader = "x-strapi-signature"

// WebhookAuthMiddleware validates the shared-secret webhook signature.
// An empty secret disables the check entirely. The rejection body stays
// generic so error content leaks nothing about the secret.
func WebhookAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		signature := c.GetHeader(SignatureHeader)
		if signature == "" || subtle.ConstantTimeCompare([]byte(signature), []byte(secret)) != 1 {
			logger.Warn("Invalid webhook signature",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Next()
	}
}
