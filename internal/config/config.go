package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Completion strategies selectable through COMPLETION_MODE.
const (
	ModeDirect = "direct"
	ModeProxy  = "proxy"
)

// Config aggregates every setting the service reads at startup.
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Store  StoreConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: server,
		AI:     ai,
		Store:  StoreConfig{Path: getEnvOrDefault("GODBOT_DB_PATH", "godbot.db")},
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// StoreConfig locates the SQLite database file.
type StoreConfig struct {
	Path string
}

// AIConfig describes the completion upstream and the failure policy.
type AIConfig struct {
	Mode            string
	APIKey          string
	Model           string
	BaseURL         string
	Region          string
	FallbackEnabled bool
}

// Enabled reports whether the selected strategy has the credentials it needs.
func (c AIConfig) Enabled() bool {
	switch c.Mode {
	case ModeProxy:
		return c.BaseURL != "" && c.Model != ""
	default:
		return c.APIKey != "" && c.Model != ""
	}
}

func loadAIConfig() (AIConfig, error) {
	mode := getEnvOrDefault("COMPLETION_MODE", ModeDirect)
	if mode != ModeDirect && mode != ModeProxy {
		return AIConfig{}, fmt.Errorf("invalid COMPLETION_MODE value: %q", mode)
	}

	fallback, err := parseBoolEnv("FALLBACK_ENABLED", true)
	if err != nil {
		return AIConfig{}, err
	}

	baseURL := strings.TrimSpace(os.Getenv("LLM_BASE_URL"))
	if baseURL == "" && mode == ModeDirect {
		baseURL = "https://ark.cn-beijing.volces.com/api/v3"
	}

	return AIConfig{
		Mode:            mode,
		APIKey:          strings.TrimSpace(os.Getenv("LLM_API_KEY")),
		Model:           strings.TrimSpace(os.Getenv("LLM_MODEL")),
		BaseURL:         baseURL,
		Region:          getEnvOrDefault("LLM_REGION", "cn-beijing"),
		FallbackEnabled: fallback,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}
