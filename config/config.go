package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Contact       ContactConfig
	Strapi        StrapiConfig
	BuildHook     BuildHookConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	AllowedOrigins []string
}

type ContactConfig struct {
	ResendAPIKey string
	FromAddress  string
	ToAddress    string
	PersistPhone bool
}

type BuildHookConfig struct {
	URL string
}

type StrapiConfig struct {
	URL   string
	Token string
	// WebhookSecret is optional; empty disables webhook authentication
	WebhookSecret string
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint string
	ServiceName      string
	ServiceVersion   string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8081")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "https://koordynuj-zdrowie.pl,https://www.koordynuj-zdrowie.pl")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("CONTACT_FROM_ADDRESS", "Formularz WWW <formularz@koordynuj-zdrowie.pl>")
	v.SetDefault("CONTACT_PERSIST_PHONE", true)
	v.SetDefault("ADMIN_EMAIL", "kontakt@koordynuj-zdrowie.pl")
	v.SetDefault("O11Y_SERVICE_NAME", "koordynuj-api")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	// Parse allowed CORS origins (comma-separated)
	allowedOrigins := []string{}
	originsStr := v.GetString("ALLOWED_CORS_ORIGINS")
	if originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			AllowedOrigins: allowedOrigins,
		},
		Contact: ContactConfig{
			ResendAPIKey: v.GetString("RESEND_API_KEY"),
			FromAddress:  v.GetString("CONTACT_FROM_ADDRESS"),
			ToAddress:    v.GetString("CONTACT_TO_ADDRESS"),
			PersistPhone: v.GetBool("CONTACT_PERSIST_PHONE"),
		},
		Strapi: StrapiConfig{
			URL:           v.GetString("STRAPI_URL"),
			Token:         v.GetString("STRAPI_TOKEN"),
			WebhookSecret: v.GetString("STRAPI_WEBHOOK_SECRET"),
		},
		BuildHook: BuildHookConfig{
			URL: v.GetString("NETLIFY_BUILD_HOOK_URL"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint: v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:      v.GetString("O11Y_SERVICE_NAME"),
			ServiceVersion:   v.GetString("O11Y_SERVICE_VERSION"),
		},
	}

	// The notification recipient defaults to the admin address
	if cfg.Contact.ToAddress == "" {
		cfg.Contact.ToAddress = v.GetString("ADMIN_EMAIL")
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}

	// Contact pipeline configuration
	if c.Contact.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY is required")
	}
	if c.Contact.FromAddress == "" {
		return fmt.Errorf("CONTACT_FROM_ADDRESS is required")
	}
	if c.Contact.ToAddress == "" {
		return fmt.Errorf("CONTACT_TO_ADDRESS is required")
	}

	// Strapi write configuration
	if c.Strapi.URL == "" {
		return fmt.Errorf("STRAPI_URL is required")
	}
	if c.Strapi.Token == "" {
		return fmt.Errorf("STRAPI_TOKEN is required")
	}

	// NETLIFY_BUILD_HOOK_URL and STRAPI_WEBHOOK_SECRET stay optional: a missing
	// hook is reported per-event, and a missing secret disables authentication.

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}
