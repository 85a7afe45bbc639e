package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultDBPath    = "quizdeck.db"
	DefaultModel     = "gemini-1.5-flash"
	DefaultTestSize  = 20
	DefaultHTTPAddr  = "127.0.0.1:8080"
	DefaultThemeName = "light"
)

type Config struct {
	QuestionsSource string
	DBPath          string
	DatabaseDSN     string
	GeminiAPIKey    string
	GeminiModel     string
	TestSize        int
	Theme           string
	HTTPAddr        string
	AllowedOrigins  string
	CryptoKey       string
	LogLevel        string
	LogFormat       string
}

// Load reads .env (if present) and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		Logger.Debug("No .env file found, using system env")
	}

	return &Config{
		QuestionsSource: os.Getenv("QUIZ_QUESTIONS"),
		DBPath:          getEnv("QUIZ_DB_PATH", DefaultDBPath),
		DatabaseDSN:     os.Getenv("DATABASE_DSN"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getEnv("GEMINI_MODEL", DefaultModel),
		TestSize:        getEnvInt("QUIZ_TEST_SIZE", DefaultTestSize),
		Theme:           getEnv("QUIZ_THEME", DefaultThemeName),
		HTTPAddr:        getEnv("HTTP_ADDR", DefaultHTTPAddr),
		AllowedOrigins:  os.Getenv("ALLOWED_ORIGINS"),
		CryptoKey:       os.Getenv("CRYPTO_KEY"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       os.Getenv("LOG_FORMAT"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		Logger.WithField("key", key).Warnf("Invalid integer %q, using %d", v, fallback)
		return fallback
	}
	return n
}
