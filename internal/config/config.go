package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App        AppConfig
	Chat       ChatConfig
	CaseAPI    CaseAPIConfig
	SystemsAPI SystemsAPIConfig
	Redis      RedisConfig
	Board      BoardConfig
	Logger     LoggerConfig
}

// AppConfig controls the operational HTTP endpoint.
type AppConfig struct {
	Name    string
	Env     string
	Host    string
	Port    string
	Version string
}

// ChatConfig describes the chat side of the bot.
type ChatConfig struct {
	GatewayURL    string
	RescueChannel string
	CommandPrefix string
	SignalKeyword string
	DrillMode     bool
	RatBlacklist  []string
	DrillChannels []string
}

// CaseAPIConfig holds remote case service connection values.
type CaseAPIConfig struct {
	URL          string
	Token        string
	PaperworkURL string
}

// SystemsAPIConfig holds star catalog service connection values.
type SystemsAPIConfig struct {
	URL             string
	CacheTTLSeconds int
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// BoardConfig controls board timers.
type BoardConfig struct {
	PrepTimeoutSeconds int
	IdleWindowMinutes  int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "rescue-dispatch"),
			Env:     getEnv("APP_ENV", "development"),
			Host:    getEnv("APP_HOST", "0.0.0.0"),
			Port:    getEnv("APP_PORT", "8080"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		Chat: ChatConfig{
			GatewayURL:    os.Getenv("CHAT_GATEWAY_URL"),
			RescueChannel: getEnv("CHAT_RESCUE_CHANNEL", "#rescue"),
			CommandPrefix: getEnv("CHAT_COMMAND_PREFIX", "!"),
			SignalKeyword: getEnv("CHAT_SIGNAL_KEYWORD", "ratsignal"),
			DrillMode:     getEnvAsBool("CHAT_DRILL_MODE", false),
			RatBlacklist:  getEnvAsList("CHAT_RAT_BLACKLIST"),
			DrillChannels: getEnvAsList("CHAT_DRILL_CHANNELS"),
		},
		CaseAPI: CaseAPIConfig{
			URL:          getEnv("CASE_API_URL", "http://127.0.0.1:8081"),
			Token:        os.Getenv("CASE_API_TOKEN"),
			PaperworkURL: getEnv("CASE_API_PAPERWORK_URL", "https://example.org/paperwork/%s/edit"),
		},
		SystemsAPI: SystemsAPIConfig{
			URL:             getEnv("SYSTEMS_API_URL", "http://127.0.0.1:8082"),
			CacheTTLSeconds: getEnvAsInt("SYSTEMS_API_CACHE_TTL_SECONDS", 300),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Board: BoardConfig{
			PrepTimeoutSeconds: getEnvAsInt("BOARD_PREP_TIMEOUT_SECONDS", 180),
			IdleWindowMinutes:  getEnvAsInt("BOARD_IDLE_WINDOW_MINUTES", 30),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// CacheTTL returns the systems lookup cache TTL as a duration.
func (s SystemsAPIConfig) CacheTTL() time.Duration {
	if s.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(s.CacheTTLSeconds) * time.Second
}

// PrepTimeout returns the prep reminder window as a duration.
func (b BoardConfig) PrepTimeout() time.Duration {
	return time.Duration(b.PrepTimeoutSeconds) * time.Second
}

// IdleWindow returns the inactivity window as a duration.
func (b BoardConfig) IdleWindow() time.Duration {
	return time.Duration(b.IdleWindowMinutes) * time.Minute
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

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsList(key string) []string {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
