package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	GitHub   GitHubConfig
	LeetCode LeetCodeConfig
	Session  SessionConfig
	Sync     SyncConfig
}

type ServerConfig struct {
	Port         string
	Mode         string
	ReadTimeout  int
	WriteTimeout int
	FrontendURL  string
}

type DatabaseConfig struct {
	Path string
}

type GitHubConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
	Token        string
}

type LeetCodeConfig struct {
	BaseURL string
}

type SessionConfig struct {
	Secret string
}

type SyncConfig struct {
	BatchSize      int
	BatchDelaySecs int
	CacheTTLHours  int
	SchedulerHour  int
}

var AppConfig *Config

// Load loads configuration from .env file and environment variables
func Load() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Mode:         getEnv("GIN_MODE", "release"),
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 15),
			FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./codepulse.db"),
		},
		GitHub: GitHubConfig{
			ClientID:     getEnv("GITHUB_CLIENT_ID", ""),
			ClientSecret: getEnv("GITHUB_CLIENT_SECRET", ""),
			CallbackURL:  getEnv("GITHUB_CALLBACK_URL", ""),
			Token:        getEnv("GITHUB_TOKEN", ""),
		},
		LeetCode: LeetCodeConfig{
			BaseURL: getEnv("LEETCODE_API_URL", "https://leetcode-stats-api.herokuapp.com"),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "default-secret-key"),
		},
		Sync: SyncConfig{
			BatchSize:      getEnvAsInt("SYNC_BATCH_SIZE", 5),
			BatchDelaySecs: getEnvAsInt("SYNC_BATCH_DELAY", 2),
			CacheTTLHours:  getEnvAsInt("METRICS_CACHE_TTL", 24),
			SchedulerHour:  getEnvAsInt("SYNC_HOUR", 3),
		},
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
