package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	MigrationsPath string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	JWTSecret      string
	JWTIssuer      string

	// Idempotency guard, disabled when RedisAddr is empty
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	IdempotencyTTL time.Duration

	// Settlement
	BusinessLocation          *time.Location
	DefaultCommissionPercent  decimal.Decimal
	SettlementTxTimeout       time.Duration
	ReversalGuardZeroMovement bool

	// Transient-error retries
	RetryMaxAttempts int
	RetryBaseDelay   time.Duration
	RetryMaxDelay    time.Duration

	// HTTP boundary
	RateLimit          string
	CORSAllowedOrigins []string
}

// parseDuration reads a duration key and falls back to def with a warning.
func parseDuration(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "banca-settlement")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("IDEMPOTENCY_TTL", "30s")
	viper.SetDefault("BUSINESS_TIMEZONE", "America/Costa_Rica")
	viper.SetDefault("DEFAULT_COMMISSION_PERCENT", "0")
	viper.SetDefault("SETTLEMENT_TX_TIMEOUT", "2m")
	viper.SetDefault("REVERSAL_GUARD_ZERO_MOVEMENT", true)
	viper.SetDefault("RETRY_MAX_ATTEMPTS", 3)
	viper.SetDefault("RETRY_BASE_DELAY", "100ms")
	viper.SetDefault("RETRY_MAX_DELAY", "2s")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")
	cfg.IdempotencyTTL = parseDuration("IDEMPOTENCY_TTL", 30*time.Second)
	if cfg.RedisAddr == "" {
		log.Println("Warning: REDIS_ADDR not set. In-flight idempotency guard is disabled.")
	}

	tz := viper.GetString("BUSINESS_TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("Warning: Unknown BUSINESS_TIMEZONE ('%s'). Defaulting to UTC.\n", tz)
		loc = time.UTC
	}
	cfg.BusinessLocation = loc

	pct, err := decimal.NewFromString(viper.GetString("DEFAULT_COMMISSION_PERCENT"))
	if err != nil || pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		log.Printf("Warning: Invalid DEFAULT_COMMISSION_PERCENT ('%s'). Defaulting to 0.\n", viper.GetString("DEFAULT_COMMISSION_PERCENT"))
		pct = decimal.Zero
	}
	cfg.DefaultCommissionPercent = pct
	cfg.SettlementTxTimeout = parseDuration("SETTLEMENT_TX_TIMEOUT", 2*time.Minute)
	cfg.ReversalGuardZeroMovement = viper.GetBool("REVERSAL_GUARD_ZERO_MOVEMENT")

	cfg.RetryMaxAttempts = viper.GetInt("RETRY_MAX_ATTEMPTS")
	if cfg.RetryMaxAttempts < 1 {
		cfg.RetryMaxAttempts = 1
	}
	cfg.RetryBaseDelay = parseDuration("RETRY_BASE_DELAY", 100*time.Millisecond)
	cfg.RetryMaxDelay = parseDuration("RETRY_MAX_DELAY", 2*time.Second)

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
