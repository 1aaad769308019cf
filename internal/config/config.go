package config

import (
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	// DBPath is the sqlite file used when DBHost is empty (local dev).
	DBPath string

	JWTSecret string

	OpenAIAPIKey   string
	OpenAIBaseURL  string
	OpenAIModel    string
	ChatbotTimeout time.Duration

	UploadDir string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "faqapp"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBPath:     getEnv("DB_PATH", "faqapp.db"),

		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),

		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:  os.Getenv("OPENAI_API_URL"),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		ChatbotTimeout: time.Duration(getEnvInt("CHATBOT_TIMEOUT_SECONDS", 30)) * time.Second,

		UploadDir: getEnv("UPLOAD_DIR", "uploads"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}
