// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Configuration holds all service configuration.
type Configuration struct {
	Service       ServiceConfig
	ChatAPI       ChatAPIConfig
	Poll          PollConfig
	Workspace     WorkspaceConfig
	Kafka         KafkaConfig
	Observability ObservabilityConfig
}

// ServiceConfig holds service identity and listen settings.
type ServiceConfig struct {
	Principal string
	HTTPPort  string
}

// ChatAPIConfig holds settings for the chat backend the tracker talks to.
type ChatAPIConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	AuthCookie     string
}

// PollConfig bounds the status poll loop.
type PollConfig struct {
	Interval    time.Duration
	MaxAttempts int
}

// WorkspaceConfig identifies the workspace and its default skill.
type WorkspaceConfig struct {
	WorkspaceID    string
	DefaultSkillID string
}

// KafkaConfig holds Kafka event publishing settings.
type KafkaConfig struct {
	Enabled   bool
	Brokers   []string
	Topic     string
	Principal string
}

// ObservabilityConfig holds logging and metrics settings.
type ObservabilityConfig struct {
	LogLevel    string
	MetricsPort string
}

// Load reads configuration from environment variables, falling back to
// defaults for missing or unparseable values.
func Load() *Configuration {
	principal := envOrDefault("SERVICE_PRINCIPAL", "svc-chat-transcription-tracker")

	return &Configuration{
		Service: ServiceConfig{
			Principal: principal,
			HTTPPort:  envOrDefault("HTTP_PORT", "8080"),
		},
		ChatAPI: ChatAPIConfig{
			BaseURL:        envOrDefault("CHAT_API_BASE_URL", "http://localhost:3000"),
			RequestTimeout: envOrDefaultDuration("CHAT_API_TIMEOUT", 5*time.Second),
			AuthCookie:     envOrDefault("CHAT_API_AUTH_COOKIE", ""),
		},
		Poll: PollConfig{
			Interval:    envOrDefaultDuration("POLL_INTERVAL", time.Second),
			MaxAttempts: envOrDefaultInt("POLL_MAX_ATTEMPTS", 600),
		},
		Workspace: WorkspaceConfig{
			WorkspaceID:    envOrDefault("WORKSPACE_ID", ""),
			DefaultSkillID: envOrDefault("DEFAULT_SKILL_ID", ""),
		},
		Kafka: KafkaConfig{
			Enabled:   envOrDefaultBool("KAFKA_ENABLED", false),
			Brokers:   envList("KAFKA_BROKERS"),
			Topic:     envOrDefault("KAFKA_TOPIC_LIFECYCLE", "chat.transcription.lifecycle"),
			Principal: envOrDefault("KAFKA_PRINCIPAL", principal),
		},
		Observability: ObservabilityConfig{
			LogLevel:    envOrDefault("LOG_LEVEL", "info"),
			MetricsPort: envOrDefault("METRICS_PORT", "9090"),
		},
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(strings.ToLower(v)); err == nil {
			return b
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
