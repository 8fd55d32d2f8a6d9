package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	FrontendURL string
	AppEnv      string
	LogLevel    string
	// Allowed CORS origins, comma separated in ALLOWED_ORIGINS
	AllowedOrigins []string
	// Database pool sizing
	DBMaxConns int
	DBMinConns int
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitGlobalThreshold  int
	RateLimitScoringThreshold int
	RateLimitSubmitThreshold  int
	// Scoring Configuration
	CatalogPath                string  // Optional YAML catalog overriding the embedded one
	ScoringSimilarityThreshold float64 // Fuzzy skill match threshold in (0,1]
	ScoringApplyMultipliers    bool    // Apply per-position category multipliers
}

func LoadConfig() (*Config, error) {
	// Load .env file (local only, ignored when the file does not exist)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		AppEnv:      getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DBMaxConns:  getEnvInt("DB_MAX_CONNS", 25),
		DBMinConns:  getEnvInt("DB_MIN_CONNS", 5),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold:  getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitScoringThreshold: getEnvInt("RATE_LIMIT_SCORING_THRESHOLD", 5),
		RateLimitSubmitThreshold:  getEnvInt("RATE_LIMIT_SUBMIT_THRESHOLD", 10),
		// Scoring Configuration
		CatalogPath:                getEnv("CATALOG_PATH", ""),
		ScoringSimilarityThreshold: getEnvFloat("SCORING_SIMILARITY_THRESHOLD", 0.7),
		ScoringApplyMultipliers:    getEnvBool("SCORING_APPLY_MULTIPLIERS", true),
	}
	cfg.AllowedOrigins = splitList(getEnv("ALLOWED_ORIGINS", cfg.FrontendURL))

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvFloat returns a float environment variable or fallback if not set/invalid
func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimRight(strings.TrimSpace(part), "/"); part != "" {
			out = append(out, part)
		}
	}
	return out
}
