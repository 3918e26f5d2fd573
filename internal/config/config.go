package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Analyzer AnalyzerConfig
	Storage  StorageConfig
	Session  SessionConfig
	Stub     StubConfig
}

type ServerConfig struct {
	Port      string
	Env       string
	BodyLimit int
}

type AnalyzerConfig struct {
	BaseURL string
	// Zero means the request waits for the backend indefinitely.
	Timeout time.Duration
}

type StorageConfig struct {
	UploadPath string
	// Zero disables the upload size cap.
	MaxUploadSize int64
}

type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

type StubConfig struct {
	Port string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:      getEnv("PORT", "3000"),
			Env:       getEnv("ENV", "development"),
			BodyLimit: getEnvAsInt("BODY_LIMIT", 32*1024*1024),
		},
		Analyzer: AnalyzerConfig{
			BaseURL: strings.TrimRight(getEnv("ANALYZER_BASE_URL", "http://localhost:5000"), "/"),
			Timeout: getEnvAsDuration("ANALYZER_TIMEOUT", "0s"),
		},
		Storage: StorageConfig{
			UploadPath:    getEnv("UPLOAD_PATH", "./uploads"),
			MaxUploadSize: getEnvAsInt64("MAX_UPLOAD_SIZE", 0),
		},
		Session: SessionConfig{
			TTL:           getEnvAsDuration("SESSION_TTL", "1h"),
			SweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", "1m"),
		},
		Stub: StubConfig{
			Port: getEnv("STUB_PORT", "5000"),
		},
	}
}

func (c *Config) AnalyzeEndpoint() string {
	return fmt.Sprintf("%s/api/resume/analyze-with-upload", c.Analyzer.BaseURL)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
