package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/koordynuj/koordynuj-api/config"
	"github.com/koordynuj/koordynuj-api/internal/handlers"
	"github.com/koordynuj/koordynuj-api/internal/middleware"
	"github.com/koordynuj/koordynuj-api/internal/services"
	"github.com/koordynuj/koordynuj-api/pkg/buildhook"
	"github.com/koordynuj/koordynuj-api/pkg/httpclient"
	"github.com/koordynuj/koordynuj-api/pkg/logger"
	"github.com/koordynuj/koordynuj-api/pkg/metrics"
	"github.com/koordynuj/koordynuj-api/pkg/resend"
	"github.com/koordynuj/koordynuj-api/pkg/strapi"
	"github.com/koordynuj/koordynuj-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Koordynuj API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceVersion,
		cfg.Server.AppEnv,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Initialize HTTP client for outbound collaborator calls
	httpClient := httpclient.NewStandardClient()

	// Initialize collaborator clients
	emailClient := resend.NewClient(cfg.Contact.ResendAPIKey, httpClient)
	strapiClient := strapi.NewClient(cfg.Strapi.URL, cfg.Strapi.Token, httpClient)
	buildTrigger := buildhook.NewTrigger(cfg.BuildHook.URL, httpClient)

	if cfg.BuildHook.URL == "" {
		logger.Warn("NETLIFY_BUILD_HOOK_URL not configured: rebuild triggers will be reported as failed")
	}
	if cfg.Strapi.WebhookSecret == "" {
		logger.Warn("STRAPI_WEBHOOK_SECRET not configured: webhook authentication disabled")
	}

	// Initialize services
	contactService := services.NewContactService(emailClient, strapiClient, cfg)
	rebuildService := services.NewRebuildService(buildTrigger)

	// Initialize handlers
	contactHandler := handlers.NewContactHandler(contactService)
	webhookHandler := handlers.NewWebhookHandler(rebuildService, cfg.Observability.ServiceName)
	healthHandler := handlers.NewHealthHandler()

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS: only the site's own origins may call the contact endpoint
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:4321", "http://127.0.0.1:4321")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.SignatureHeader, "traceparent", "tracestate"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	// Rate limiters, per client IP
	generalRateLimiter := middleware.NewRateLimiter(100, 200) // 100 req/sec, burst of 200
	contactRateLimiter := middleware.NewRateLimiter(5, 10)    // 5 req/sec, burst of 10
	webhookRateLimiter := middleware.NewRateLimiter(10, 20)   // 10 req/sec, burst of 20

	// Utility endpoints
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.POST("/contact", contactRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), contactHandler.SubmitContact)
	v1.POST("/webhook/strapi", webhookRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(1*1024*1024),
		middleware.WebhookAuthMiddleware(cfg.Strapi.WebhookSecret), webhookHandler.HandleStrapiEvent)
	v1.GET("/webhook/strapi", generalRateLimiter.Middleware(), webhookHandler.Health)

	// Create HTTP server
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
