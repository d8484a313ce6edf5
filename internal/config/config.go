package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the client and the stub API.
type Config struct {
	Client ClientConfig
	Stub   StubConfig
	Logger LoggerConfig
}

// ClientConfig controls the outbound API client and local session state.
type ClientConfig struct {
	APIBaseURL     string
	StateFile      string
	TimeoutSeconds int
}

// StubConfig configures the local stub backend.
type StubConfig struct {
	Host            string
	Port            string
	JWTSecret       string
	TokenTTLMinutes int
	BcryptCost      int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults
// where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Client: ClientConfig{
			APIBaseURL:     getEnv("BUS_API_URL", "http://127.0.0.1:4000"),
			StateFile:      getEnv("BUS_STATE_FILE", defaultStateFile()),
			TimeoutSeconds: getEnvAsInt("BUS_HTTP_TIMEOUT_SECONDS", 30),
		},
		Stub: StubConfig{
			Host:            getEnv("STUB_HOST", "127.0.0.1"),
			Port:            getEnv("STUB_PORT", "4000"),
			JWTSecret:       getEnv("STUB_JWT_SECRET", "dev-secret"),
			TokenTTLMinutes: getEnvAsInt("STUB_TOKEN_TTL_MINUTES", 60),
			BcryptCost:      getEnvAsInt("STUB_BCRYPT_COST", 10),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if cfg.Client.APIBaseURL == "" {
		return nil, fmt.Errorf("BUS_API_URL must not be empty")
	}
	return cfg, nil
}

// Timeout returns the configured HTTP timeout duration.
func (c ClientConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Addr returns the stub bind address.
func (s StubConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// TokenTTL returns the stub's access token lifetime.
func (s StubConfig) TokenTTL() time.Duration {
	if s.TokenTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(s.TokenTTLMinutes) * time.Minute
}

func defaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".busctl-session.json"
	}
	return filepath.Join(dir, "busctl", "session.json")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
