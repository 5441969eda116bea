package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Auth     AuthConfig
	LLM      LLMConfig
	Pipeline PipelineConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
	ConnectRetry    time.Duration
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// AuthConfig holds session-token configuration
type AuthConfig struct {
	JWTSecret  string
	SessionTTL time.Duration
}

// LLMConfig holds the Gemini client configuration
type LLMConfig struct {
	Model       string
	APIKey      string
	Temperature float32
	Timeout     time.Duration
}

// PipelineConfig holds the email pipeline policy thresholds.
// OrderConfidenceFloor gates the extraction attempt; ReviewConfidenceCeiling
// gates the requires_review flag on created orders.
type PipelineConfig struct {
	OrderConfidenceFloor    int
	ReviewConfidenceCeiling int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", ""),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 20),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
			ConnectRetry:    getEnvAsDuration("DB_CONNECT_RETRY", 30*time.Second),
		},
		Server: ServerConfig{
			Addr:            getEnv("HTTP_ADDR", ":8080"),
			ReadTimeout:     getEnvAsDuration("HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("HTTP_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", ""),
			SessionTTL: getEnvAsDuration("SESSION_TTL", 7*24*time.Hour),
		},
		LLM: LLMConfig{
			Model:       getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			Temperature: getEnvAsFloat32("GEMINI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("GEMINI_TIMEOUT", 45*time.Second),
		},
		Pipeline: PipelineConfig{
			OrderConfidenceFloor:    getEnvAsInt("ORDER_CONFIDENCE_FLOOR", 70),
			ReviewConfidenceCeiling: getEnvAsInt("REVIEW_CONFIDENCE_CEILING", 90),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "GEMINI_API_KEY is required", ErrInvalidInput)
	}
	if c.Auth.JWTSecret == "" {
		return NewAppError("CONFIG_ERROR", "JWT_SECRET is required", ErrInvalidInput)
	}
	if c.Pipeline.OrderConfidenceFloor < 0 || c.Pipeline.OrderConfidenceFloor > 100 {
		return NewAppError("CONFIG_ERROR", "ORDER_CONFIDENCE_FLOOR must be 0-100", ErrInvalidInput)
	}
	if c.Pipeline.ReviewConfidenceCeiling < 0 || c.Pipeline.ReviewConfidenceCeiling > 100 {
		return NewAppError("CONFIG_ERROR", "REVIEW_CONFIDENCE_CEILING must be 0-100", ErrInvalidInput)
	}
	return nil
}
