package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	Env         string `mapstructure:"ENV"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB     int    `mapstructure:"REDIS_CACHE_DB"`
	RedisRateLimitDB int    `mapstructure:"REDIS_RATE_LIMIT_DB"`
	RedisQueueDB     int    `mapstructure:"REDIS_QUEUE_DB"`

	// Rate limiting and abuse prevention.
	// RateLimitShared selects the redis-backed store so limits are enforced
	// across instances; the default in-memory store is per-instance only.
	RateLimitShared      bool `mapstructure:"RATE_LIMIT_SHARED"`
	GlobalRatePerMin     int  `mapstructure:"GLOBAL_RATE_PER_MIN"`
	GlobalRateBurst      int  `mapstructure:"GLOBAL_RATE_BURST"`
	BlacklistThreshold   int  `mapstructure:"BLACKLIST_THRESHOLD"`
	EscalationPeriodMin  int  `mapstructure:"ESCALATION_PERIOD_MIN"`
	BlacklistDurationMin int  `mapstructure:"BLACKLIST_DURATION_MIN"`

	// Booking policy.
	// SlotGranularityMin of 0 means candidate slots step by the service duration.
	SlotGranularityMin int    `mapstructure:"SLOT_GRANULARITY_MIN"`
	BookingHorizonDays int    `mapstructure:"BOOKING_HORIZON_DAYS"`
	DefaultTimezone    string `mapstructure:"DEFAULT_TIMEZONE"`

	// SuspendedBlocksReads controls whether a suspended tenant also blocks
	// public read-only endpoints (writes are always blocked).
	SuspendedBlocksReads bool `mapstructure:"SUSPENDED_BLOCKS_READS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_RATE_LIMIT_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("RATE_LIMIT_SHARED", false)
	viper.SetDefault("GLOBAL_RATE_PER_MIN", 300)
	viper.SetDefault("GLOBAL_RATE_BURST", 50)
	viper.SetDefault("BLACKLIST_THRESHOLD", 3)
	viper.SetDefault("ESCALATION_PERIOD_MIN", 5)
	viper.SetDefault("BLACKLIST_DURATION_MIN", 60)
	viper.SetDefault("SLOT_GRANULARITY_MIN", 0)
	viper.SetDefault("BOOKING_HORIZON_DAYS", 365)
	viper.SetDefault("DEFAULT_TIMEZONE", "UTC")
	viper.SetDefault("SUSPENDED_BLOCKS_READS", true)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
