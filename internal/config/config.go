// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Port          string
	GRPCPort      string // empty disables the gRPC health listener
	AppEnv        string // "development" or "production"
	FrontendURL   string
	DBPath        string
	AdminPassword string
	SessionTTL    time.Duration
	MaxTextLength int
	Gemini        GeminiConfig
	ActivityLog   ActivityLogConfig
}

// GeminiConfig selects the hosted models used by the gateway.
type GeminiConfig struct {
	APIKey    string
	TextModel string
	TTSModel  string
	TTSVoice  string
}

// ActivityLogConfig controls the SQLite activity trail.
type ActivityLogConfig struct {
	Enabled         bool
	Retention       time.Duration
	RetentionPeriod time.Duration // how often the retention worker sweeps
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	maxText := getEnvInt("MAX_TEXT_LENGTH", 5000)
	if maxText <= 0 {
		maxText = 5000
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		GRPCPort:      getEnv("GRPC_PORT", "9090"),
		AppEnv:        strings.ToLower(getEnv("APP_ENV", "development")),
		FrontendURL:   getEnv("FRONTEND_URL", ""),
		DBPath:        getEnv("DB_PATH", "./data/dilci.db"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SessionTTL:    24 * time.Hour,
		MaxTextLength: maxText,
		Gemini:        loadGemini(),
		ActivityLog: ActivityLogConfig{
			Enabled:         getEnvBool("ACTIVITY_LOG_ENABLED", true),
			Retention:       getEnvDuration("ACTIVITY_RETENTION", 7*24*time.Hour),
			RetentionPeriod: getEnvDuration("ACTIVITY_RETENTION_INTERVAL", time.Hour),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadGemini reads only the model configuration. Used by the CLI, which never
// serves pages and so does not need the admin credential.
func LoadGemini() (GeminiConfig, error) {
	g := loadGemini()
	if err := g.Validate(); err != nil {
		return GeminiConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return g, nil
}

func loadGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:    getEnv("GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY")),
		TextModel: getEnv("GEMINI_TEXT_MODEL", "gemini-2.5-flash"),
		TTSModel:  getEnv("GEMINI_TTS_MODEL", "gemini-2.5-flash-preview-tts"),
		TTSVoice:  getEnv("GEMINI_TTS_VOICE", "Algenib"),
	}
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	// No built-in fallback: a missing credential must stop the server.
	if c.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD must be set")
	}
	if c.AppEnv != "development" && c.AppEnv != "production" {
		return fmt.Errorf("APP_ENV must be development or production, got %q", c.AppEnv)
	}
	if c.MaxTextLength < 1 || c.MaxTextLength > 5000 {
		return fmt.Errorf("MAX_TEXT_LENGTH must be between 1 and 5000, got %d", c.MaxTextLength)
	}
	if c.ActivityLog.Retention <= 0 {
		return fmt.Errorf("ACTIVITY_RETENTION must be > 0")
	}
	if c.ActivityLog.RetentionPeriod <= 0 {
		return fmt.Errorf("ACTIVITY_RETENTION_INTERVAL must be > 0")
	}
	return c.Gemini.Validate()
}

// Validate checks the model configuration.
func (g GeminiConfig) Validate() error {
	if g.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY must be set")
	}
	if g.TextModel == "" || g.TTSModel == "" {
		return fmt.Errorf("GEMINI_TEXT_MODEL and GEMINI_TTS_MODEL cannot be empty")
	}
	return nil
}

// IsProduction reports whether cookies must be marked Secure.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return !c.IsProduction()
}

// AllowedOrigins returns the CORS allow-list derived from FRONTEND_URL.
func (c *Config) AllowedOrigins() []string {
	if c.FrontendURL == "" {
		if c.IsDevelopment() {
			return []string{"*"}
		}
		return nil
	}
	var origins []string
	for _, o := range strings.Split(c.FrontendURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, strings.TrimRight(o, "/"))
		}
	}
	return origins
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
