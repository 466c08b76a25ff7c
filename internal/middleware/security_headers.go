package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware adds security headers to all HTTP responses
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Prevents clickjacking attacks
		c.Header("X-Frame-Options", "DENY")

		// Prevents MIME type sniffing
		c.Header("X-Content-Type-Options", "nosniff")

		// Controls referrer information
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Restricts browser features
		c.Header("Permissions-Policy", "camera=(), microphone=(), geolocation=(), interest-cohort=()")

		// Prevent caching of API responses
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, private")
		c.Header("Pragma", "no-cache")

		c.Next()
	}
}
