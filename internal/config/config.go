package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gratitudenest/gratitude-service/internal/auth"
	"github.com/gratitudenest/gratitude-service/internal/envconfig"
)

// DataStore selects the persistence backend.
type DataStore string

const (
	// DataStoreFirestore persists challenge state in Firestore.
	DataStoreFirestore DataStore = "firestore"
	// DataStoreMemory keeps state in memory, for local development.
	DataStoreMemory DataStore = "memory"
)

// Config encapsulates the runtime configuration for the gratitude service.
type Config struct {
	Port         string `validate:"required"`
	GCPProjectID string
	DataStore    DataStore
	Auth         AuthConfig
	Firestore    FirestoreConfig
	LLM          LLMConfig
}

// AuthConfig stores authentication middleware setup.
type AuthConfig struct {
	Mode     auth.Mode
	JWKSURL  string
	Audience string
	Issuer   string
}

// FirestoreConfig tailors Firestore client behavior.
type FirestoreConfig struct {
	EmulatorHost string
}

// LLMConfig defines how the assist endpoints talk to Gemini.
type LLMConfig struct {
	APIKey          string
	Model           string
	MaxOutputTokens int
	UseVertex       bool
	Location        string
}

// Load reads environment variables into Config with validation.
func Load() (Config, error) {
	cfg := Config{
		Port:         envconfig.Get("PORT", "8080"),
		GCPProjectID: envconfig.Get("GCP_PROJECT_ID", ""),
		DataStore:    DataStore(strings.ToLower(envconfig.Get("DATA_STORE", string(DataStoreMemory)))),
		Auth: AuthConfig{
			Mode:     auth.Mode(strings.ToLower(envconfig.Get("AUTH_MODE", string(auth.ModeNoop)))),
			JWKSURL:  envconfig.Get("CLERK_JWKS_URL", ""),
			Audience: envconfig.Get("CLERK_AUDIENCE", ""),
			Issuer:   envconfig.Get("CLERK_ISSUER", ""),
		},
		Firestore: FirestoreConfig{
			EmulatorHost: envconfig.Get("FIRESTORE_EMULATOR_HOST", ""),
		},
		LLM: LLMConfig{
			APIKey:          resolveAPIKey(),
			Model:           envconfig.Get("GEMINI_MODEL", "gemini-2.5-flash"),
			MaxOutputTokens: parseIntFallback(envconfig.Get("ASSIST_MAX_OUTPUT_TOKENS", "256"), 256),
			UseVertex:       parseBool(envconfig.Get("GOOGLE_GENAI_USE_VERTEXAI", "false")),
			Location:        envconfig.Get("GOOGLE_CLOUD_LOCATION", ""),
		},
	}

	if err := envconfig.Validate(cfg); err != nil {
		return Config{}, err
	}
	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func validate(cfg Config) error {
	switch cfg.DataStore {
	case DataStoreFirestore:
		if cfg.GCPProjectID == "" {
			return fmt.Errorf("GCP_PROJECT_ID is required when DATA_STORE=firestore")
		}
	case DataStoreMemory:
		// no-op
	default:
		return fmt.Errorf("unsupported data store: %s", cfg.DataStore)
	}

	switch cfg.Auth.Mode {
	case auth.ModeClerk:
		if cfg.Auth.JWKSURL == "" {
			return fmt.Errorf("CLERK_JWKS_URL is required when AUTH_MODE=clerk")
		}
	case auth.ModeNoop:
		// no-op
	default:
		return fmt.Errorf("unsupported auth mode: %s", cfg.Auth.Mode)
	}

	if cfg.LLM.MaxOutputTokens <= 0 {
		return fmt.Errorf("ASSIST_MAX_OUTPUT_TOKENS must be > 0")
	}
	if cfg.LLM.UseVertex && strings.TrimSpace(cfg.LLM.Location) == "" {
		return fmt.Errorf("GOOGLE_CLOUD_LOCATION is required when GOOGLE_GENAI_USE_VERTEXAI=true")
	}

	return nil
}

func resolveAPIKey() string {
	if apiKey := envconfig.Get("GEMINI_API_KEY", ""); strings.TrimSpace(apiKey) != "" {
		return apiKey
	}
	return envconfig.Get("GOOGLE_API_KEY", "")
}

func parseIntFallback(raw string, fallback int) int {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return fallback
	}
	return val
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
