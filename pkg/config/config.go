package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// ReportLowThresholdPct is the percentage of period contributions below
	// which a fund balance is reported as Low.
	ReportLowThresholdPct decimal.Decimal

	// OverdueSweepInterval is how often pending remittances are swept for
	// overdue transitions.
	OverdueSweepInterval time.Duration

	// AMQP settings for the notification dispatcher. An empty URL disables
	// publishing and falls back to log-only dispatch.
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	RateLimit string
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
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "mission-finance-app")
	viper.SetDefault("REPORT_LOW_THRESHOLD_PCT", "10")
	viper.SetDefault("OVERDUE_SWEEP_INTERVAL", "1h")
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("AMQP_EXCHANGE", "mfa.notifications")
	viper.SetDefault("AMQP_QUEUE", "mfa.notifications.out")
	viper.SetDefault("RATE_LIMIT", "100-M")

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
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	jwtExpiry, err := time.ParseDuration(viper.GetString("JWT_EXPIRY_DURATION"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_DURATION: %w", err)
	}
	cfg.JWTExpiryDuration = jwtExpiry

	lowPct, err := decimal.NewFromString(viper.GetString("REPORT_LOW_THRESHOLD_PCT"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_LOW_THRESHOLD_PCT: %w", err)
	}
	cfg.ReportLowThresholdPct = lowPct

	sweepInterval, err := time.ParseDuration(viper.GetString("OVERDUE_SWEEP_INTERVAL"))
	if err != nil {
		return nil, fmt.Errorf("invalid OVERDUE_SWEEP_INTERVAL: %w", err)
	}
	cfg.OverdueSweepInterval = sweepInterval

	cfg.AMQPURL = viper.GetString("AMQP_URL")
	cfg.AMQPExchange = viper.GetString("AMQP_EXCHANGE")
	cfg.AMQPQueue = viper.GetString("AMQP_QUEUE")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
