// Package config loads all service settings from environment variables.
package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every section of the service configuration.
type Config struct {
	Server    ServerConfig
	Recommend RecommendConfig
	Rewrite   RewriteConfig
	Weather   WeatherConfig
	Storage   StorageConfig
	Telemetry TelemetryConfig
}

// Load reads the full configuration from the environment.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	recommend, err := loadRecommendConfig()
	if err != nil {
		return nil, err
	}

	rewrite, err := loadRewriteConfig()
	if err != nil {
		return nil, err
	}

	weather := loadWeatherConfig()
	storage := loadStorageConfig()

	telemetry, err := loadTelemetryConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:    server,
		Recommend: recommend,
		Rewrite:   rewrite,
		Weather:   weather,
		Storage:   storage,
		Telemetry: telemetry,
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
		// Accept ":8080" or "127.0.0.1:8080" verbatim.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// RecommendConfig holds credentials and tuning for the recommendation API.
type RecommendConfig struct {
	APIKey        string
	BaseURL       string
	SearchBaseURL string
	Retries       int
	Backoff       time.Duration
}

// Enabled reports whether the required credential is present.
func (c RecommendConfig) Enabled() bool {
	return c.APIKey != ""
}

func loadRecommendConfig() (RecommendConfig, error) {
	retries := 2
	if override, err := parseOptionalIntEnv("YELP_RETRIES"); err != nil {
		return RecommendConfig{}, err
	} else if override != nil {
		if *override < 0 {
			retries = 0
		} else {
			retries = *override
		}
	}

	backoff := 600 * time.Millisecond
	if override, err := parseOptionalIntEnv("YELP_BACKOFF_MS"); err != nil {
		return RecommendConfig{}, err
	} else if override != nil && *override > 0 {
		backoff = time.Duration(*override) * time.Millisecond
	}

	return RecommendConfig{
		APIKey:        strings.TrimSpace(os.Getenv("YELP_API_KEY")),
		BaseURL:       getEnvOrDefault("YELP_AI_BASE_URL", "https://api.yelp.com/ai"),
		SearchBaseURL: getEnvOrDefault("YELP_SEARCH_BASE_URL", "https://api.yelp.com/v3"),
		Retries:       retries,
		Backoff:       backoff,
	}, nil
}

// RewriteConfig selects and configures the persona rewrite providers.
// Provider is a comma-separated priority list; supported values are "ark"
// and "openai".
type RewriteConfig struct {
	Providers []string
	Timeout   time.Duration
	Ark       ArkConfig
	OpenAI    OpenAIConfig
}

func loadRewriteConfig() (RewriteConfig, error) {
	timeout := 4500 * time.Millisecond
	if override, err := parseOptionalIntEnv("REWRITE_TIMEOUT_MS"); err != nil {
		return RewriteConfig{}, err
	} else if override != nil && *override > 0 {
		timeout = time.Duration(*override) * time.Millisecond
	}

	var providers []string
	for _, name := range strings.Split(getEnvOrDefault("REWRITE_PROVIDERS", "ark,openai"), ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		switch name {
		case "":
		case "ark", "openai":
			providers = append(providers, name)
		default:
			return RewriteConfig{}, fmt.Errorf("unknown rewrite provider %q", name)
		}
	}

	ark, err := loadArkConfig()
	if err != nil {
		return RewriteConfig{}, err
	}

	return RewriteConfig{
		Providers: providers,
		Timeout:   timeout,
		Ark:       ark,
		OpenAI: OpenAIConfig{
			APIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
			Model:   getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL: getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		},
	}, nil
}

// ArkConfig describes the Ark chat-model credentials.
type ArkConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// Enabled reports whether the required credentials are present.
func (c ArkConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel builds a chat model instance from the configuration.
func (c ArkConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ark credentials missing: provide ARK_API_KEY + ARK_MODEL or an AK/SK pair")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadArkConfig() (ArkConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return ArkConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return ArkConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return ArkConfig{}, err
	}

	return ArkConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       strings.TrimSpace(os.Getenv("ARK_MODEL")),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	}, nil
}

// OpenAIConfig describes the OpenAI-compatible rewrite provider.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Enabled reports whether the required credential is present.
func (c OpenAIConfig) Enabled() bool {
	return c.APIKey != ""
}

// WeatherConfig describes the weather collaborator.
type WeatherConfig struct {
	APIKey  string
	BaseURL string
}

// Enabled reports whether the required credential is present.
func (c WeatherConfig) Enabled() bool {
	return c.APIKey != ""
}

func loadWeatherConfig() WeatherConfig {
	apiKey := strings.TrimSpace(os.Getenv("OPENWEATHER_API_KEY"))
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv("OPENWEATHERMAP_API_KEY"))
	}
	return WeatherConfig{
		APIKey:  apiKey,
		BaseURL: getEnvOrDefault("OPENWEATHER_BASE_URL", ""),
	}
}

// StorageConfig locates durable state on disk.
type StorageConfig struct {
	TokenDir string
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		TokenDir: getEnvOrDefault("SESSION_TOKEN_DIR", "data/sessions"),
	}
}

// TelemetryConfig toggles event tracking.
type TelemetryConfig struct {
	Enabled bool
}

func loadTelemetryConfig() (TelemetryConfig, error) {
	enabled, err := parseBoolEnv("TELEMETRY_ENABLED", true)
	if err != nil {
		return TelemetryConfig{}, err
	}
	return TelemetryConfig{Enabled: enabled}, nil
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

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
