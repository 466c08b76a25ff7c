package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8081",
			AllowedOrigins: []string{"https://koordynuj-zdrowie.pl"},
		},
		Contact: ContactConfig{
			ResendAPIKey: "re_key",
			FromAddress:  "Formularz WWW <formularz@koordynuj-zdrowie.pl>",
			ToAddress:    "kontakt@koordynuj-zdrowie.pl",
		},
		Strapi: StrapiConfig{
			URL:   "http://localhost:1337",
			Token: "token",
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid configuration",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing port",
			mutate:  func(c *Config) { c.Server.Port = "" },
			wantErr: "PORT",
		},
		{
			name:    "missing origins",
			mutate:  func(c *Config) { c.Server.AllowedOrigins = nil },
			wantErr: "ALLOWED_CORS_ORIGINS",
		},
		{
			name:    "missing resend key",
			mutate:  func(c *Config) { c.Contact.ResendAPIKey = "" },
			wantErr: "RESEND_API_KEY",
		},
		{
			name:    "missing strapi url",
			mutate:  func(c *Config) { c.Strapi.URL = "" },
			wantErr: "STRAPI_URL",
		},
		{
			name:    "missing strapi token",
			mutate:  func(c *Config) { c.Strapi.Token = "" },
			wantErr: "STRAPI_TOKEN",
		},
		{
			name: "build hook and webhook secret are optional",
			mutate: func(c *Config) {
				c.BuildHook.URL = ""
				c.Strapi.WebhookSecret = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected bool
	}{
		{
			name: "development environment",
			config: &Config{
				Server: ServerConfig{AppEnv: "development"},
			},
			expected: true,
		},
		{
			name: "debug gin mode",
			config: &Config{
				Server: ServerConfig{GinMode: "debug"},
			},
			expected: true,
		},
		{
			name: "production environment",
			config: &Config{
				Server: ServerConfig{AppEnv: "production", GinMode: "release"},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.IsDevelopment())
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	assert.True(t, (&Config{Server: ServerConfig{AppEnv: "production"}}).IsProduction())
	assert.False(t, (&Config{Server: ServerConfig{AppEnv: "development"}}).IsProduction())
}
