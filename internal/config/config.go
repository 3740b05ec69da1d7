package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server
	Port           string
	AllowedOrigins string

	// Storage directories
	UploadDir string
	AudioDir  string

	// Pipeline timeouts
	OCRTimeout time.Duration
	TTSTimeout time.Duration

	// Environment
	Environment string
	LogLevel    string

	// S3/Garage archive (optional)
	S3Enabled   bool
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool
	S3Region    string
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		AudioDir:       getEnv("AUDIO_DIR", "audio/output"),
		OCRTimeout:     getDurationEnv("OCR_TIMEOUT_SECONDS", 60) * time.Second,
		TTSTimeout:     getDurationEnv("TTS_TIMEOUT_SECONDS", 30) * time.Second,
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		S3Enabled:      getBoolEnv("S3_ENABLED", false),
		S3Endpoint:     getEnv("S3_ENDPOINT", "localhost:3900"),
		S3AccessKey:    getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:    getEnv("S3_SECRET_KEY", ""),
		S3Bucket:       getEnv("S3_BUCKET", "artifacts"),
		S3UseSSL:       getBoolEnv("S3_USE_SSL", false),
		S3Region:       getEnv("S3_REGION", "garage"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return time.Duration(intVal)
		}
	}
	return time.Duration(defaultValue)
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
