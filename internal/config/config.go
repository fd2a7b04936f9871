package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort   string
	DatabaseType string
	DatabasePath string
	DatabaseURL  string

	// Cache (optional; empty RedisAddr disables caching)
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	StatsCacheTTL time.Duration

	// Photo storage
	BlobBackend   string // "filesystem" or "s3"
	PhotosPath    string
	S3Bucket      string
	S3Prefix      string
	UploadMaxSize int64

	// AdminToken is either the shared secret itself or a bcrypt hash of it
	AdminToken string

	// AI encouragement endpoint (optional)
	AIBaseURL string
	AIAPIKey  string
	AIModel   string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		ServerPort:   getEnv("PORT", "8080"),
		DatabaseType: getEnv("DB_TYPE", "sqlite"),
		DatabasePath: getEnv("DB_PATH", "./readnest.db"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		StatsCacheTTL: time.Duration(getEnvInt("STATS_CACHE_TTL", 300)) * time.Second,

		BlobBackend:   getEnv("BLOB_BACKEND", "filesystem"),
		PhotosPath:    getEnv("PHOTOS_PATH", "./photos"),
		S3Bucket:      getEnv("S3_BUCKET", ""),
		S3Prefix:      getEnv("S3_PREFIX", ""),
		UploadMaxSize: int64(getEnvInt("UPLOAD_MAX_SIZE", 5*1024*1024)),

		AdminToken: getEnv("ADMIN_TOKEN", ""),

		AIBaseURL: getEnv("AI_BASE_URL", ""),
		AIAPIKey:  getEnv("AI_API_KEY", ""),
		AIModel:   getEnv("AI_MODEL", "mistral-7b-instruct"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
