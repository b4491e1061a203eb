package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Generation GenerationConfig
	Autosave   AutosaveConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	RevisionTopic      string
}

type DatabaseConfig struct {
	Connection string
}

type GenerationConfig struct {
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

type AutosaveConfig struct {
	DebounceInterval time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			RevisionTopic:      getEnv("STEP_REVISION_TOPIC_NAME", "STEP_REVISION"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Generation: GenerationConfig{
			Endpoint: getEnv("GENERATION_ENDPOINT", "http://localhost:11434"),
			APIKey:   getEnv("GENERATION_API_KEY", ""),
			Model:    getEnv("GENERATION_MODEL", "llama3"),
			Timeout:  getEnvAsDuration("GENERATION_TIMEOUT_MS", 60*time.Second),
		},
		Autosave: AutosaveConfig{
			DebounceInterval: getEnvAsDuration("AUTOSAVE_DEBOUNCE_MS", 600*time.Millisecond),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil && value > 0 {
		return time.Duration(value) * time.Millisecond
	}
	return fallback
}
