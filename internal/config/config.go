package config

import (
	"fmt"
	"os"
)

type Config struct {
	// Replicate (image generation)
	ReplicateAPIToken   string
	ReplicateAPIBaseURL string
	ReplicateModel      string

	// OpenRouter (vision analysis)
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	OpenRouterModel   string

	// Storage
	SupabaseURL           string
	SupabaseServiceKey    string
	SupabaseStorageBucket string

	// Auth
	AuthJWTSecret string

	// Billing webhook
	BillingWebhookSecret string

	// Database
	DatabaseURL string

	// Server
	Port        string
	Environment string
	BaseURL     string
}

func Load() (*Config, error) {
	cfg := &Config{
		ReplicateAPIToken:   getEnv("REPLICATE_API_TOKEN", ""),
		ReplicateAPIBaseURL: getEnv("REPLICATE_API_BASE_URL", "https://api.replicate.com/v1/"),
		ReplicateModel:      getEnv("REPLICATE_MODEL", "openai/gpt-image-1.5"),

		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL: getEnv("OPENROUTER_API_BASE_URL", "https://openrouter.ai/api/v1/"),
		OpenRouterModel:   getEnv("OPENROUTER_MODEL", "google/gemini-3-flash-preview"),

		SupabaseURL:           getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey:    getEnv("SUPABASE_SERVICE_KEY", ""),
		SupabaseStorageBucket: getEnv("SUPABASE_STORAGE_BUCKET", "selfio-images"),

		AuthJWTSecret: getEnv("AUTH_JWT_SECRET", ""),

		BillingWebhookSecret: getEnv("BILLING_WEBHOOK_SECRET", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ReplicateAPIToken == "" {
		return fmt.Errorf("REPLICATE_API_TOKEN is required")
	}
	if c.OpenRouterAPIKey == "" {
		return fmt.Errorf("OPENROUTER_API_KEY is required")
	}
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabaseServiceKey == "" {
		return fmt.Errorf("SUPABASE_SERVICE_KEY is required")
	}
	if c.AuthJWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
