package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string

	// Rate source / refresher
	RateSourceURL       string
	RateSourceTimeout   time.Duration
	RateRefreshInterval time.Duration
	RateRefreshOnStart  bool

	// Kafka event publishing; empty brokers disables publishing.
	KafkaBrokers []string
	KafkaTopic   string

	// HTTP surface
	CORSAllowedOrigins []string
	RateLimitRPS       int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("RATE_SOURCE_URL", "https://bank.gov.ua/NBUStatService/v1/statdirectory/exchange?json")
	viper.SetDefault("RATE_SOURCE_TIMEOUT", "20s")
	viper.SetDefault("RATE_REFRESH_INTERVAL", "1h")
	viper.SetDefault("RATE_REFRESH_ON_START", true)
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_TOPIC", "ledger_events")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT_RPS", 20)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.RateSourceURL = viper.GetString("RATE_SOURCE_URL")

	cfg.RateSourceTimeout = parseDurationOr("RATE_SOURCE_TIMEOUT", 20*time.Second)
	cfg.RateRefreshInterval = parseDurationOr("RATE_REFRESH_INTERVAL", time.Hour)
	cfg.RateRefreshOnStart = viper.GetBool("RATE_REFRESH_ON_START")

	cfg.KafkaBrokers = splitNonEmpty(viper.GetString("KAFKA_BROKERS"))
	cfg.KafkaTopic = viper.GetString("KAFKA_TOPIC")
	if len(cfg.KafkaBrokers) == 0 {
		log.Println("Warning: KAFKA_BROKERS not set. Ledger event publishing is disabled.")
	}

	cfg.CORSAllowedOrigins = splitNonEmpty(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.RateLimitRPS = viper.GetInt("RATE_LIMIT_RPS")

	return cfg, nil
}

func parseDurationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}

func splitNonEmpty(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
