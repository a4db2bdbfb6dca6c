package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ConfigError reports a missing or malformed required configuration value.
// It is fatal at startup; nothing retries configuration.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return "config: " + e.Key + ": " + e.Reason
}

// Config bundles everything the service needs at startup.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Comgate  ComgateConfig
	Telegram TelegramConfig
	Poller   PollerConfig
}

type ServerConfig struct {
	Port int
	Env  string // "development", "production"

	// BaseURL is the public scheme+host the gateway calls back on.
	BaseURL string
}

type DatabaseConfig struct {
	Host    string
	Port    string
	Name    string
	User    string
	Pass    string
	Charset string
}

type RedisConfig struct {
	Addr string
	Pass string
	DB   int
}

// ComgateConfig holds the merchant credentials and mode. All four values
// are required and validated strictly; see FromEnv.
type ComgateConfig struct {
	Merchant string
	Secret   string
	HashSalt string
	TestMode bool
}

type TelegramConfig struct {
	Token  string
	ChatID int64
}

type PollerConfig struct {
	// Interval between pending-payment status sweeps.
	Interval time.Duration
}

// Lookup reads one environment value and reports whether it was set.
// os.LookupEnv satisfies it; tests substitute a map.
type Lookup func(key string) (string, bool)

// ComgateFromEnv validates the four required gateway values from an
// environment snapshot. Values are trimmed; the test-mode flag must be
// exactly "true" or "false". A missing or malformed value is a
// ConfigError naming the key.
func ComgateFromEnv(lookup Lookup) (ComgateConfig, error) {
	var cfg ComgateConfig

	merchant, ok := lookup("COMGATE_MERCHANT")
	if !ok {
		return cfg, &ConfigError{Key: "COMGATE_MERCHANT", Reason: "not set"}
	}
	secret, ok := lookup("COMGATE_SECRET")
	if !ok {
		return cfg, &ConfigError{Key: "COMGATE_SECRET", Reason: "not set"}
	}
	salt, ok := lookup("COMGATE_HASH_SALT")
	if !ok {
		return cfg, &ConfigError{Key: "COMGATE_HASH_SALT", Reason: "not set"}
	}
	testModeRaw, ok := lookup("COMGATE_TEST_MODE")
	if !ok {
		return cfg, &ConfigError{Key: "COMGATE_TEST_MODE", Reason: "not set"}
	}

	testModeRaw = strings.TrimSpace(testModeRaw)
	if testModeRaw != "true" && testModeRaw != "false" {
		return cfg, &ConfigError{Key: "COMGATE_TEST_MODE", Reason: `must be "true" or "false"`}
	}

	cfg.Merchant = strings.TrimSpace(merchant)
	cfg.Secret = strings.TrimSpace(secret)
	cfg.HashSalt = strings.TrimSpace(salt)
	cfg.TestMode = testModeRaw == "true"
	return cfg, nil
}

// Load reads configuration from the .env file and environment variables.
// The Comgate section is strict; everything else has defaults.
func Load() (*Config, error) {
	// Load .env file (ignore error if missing)
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", 8080)
	viper.SetDefault("APP_ENV", "production")
	viper.SetDefault("APP_BASE_URL", "http://localhost:8080")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "3306")
	viper.SetDefault("DB_CHARSET", "utf8mb4")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("POLL_INTERVAL", "2m")

	comgateCfg, err := ComgateFromEnv(os.LookupEnv)
	if err != nil {
		return nil, err
	}

	interval, err := time.ParseDuration(viper.GetString("POLL_INTERVAL"))
	if err != nil {
		interval = 2 * time.Minute
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:    viper.GetInt("APP_PORT"),
			Env:     viper.GetString("APP_ENV"),
			BaseURL: viper.GetString("APP_BASE_URL"),
		},
		Database: DatabaseConfig{
			Host:    viper.GetString("DB_HOST"),
			Port:    viper.GetString("DB_PORT"),
			Name:    viper.GetString("DB_NAME"),
			User:    viper.GetString("DB_USER"),
			Pass:    viper.GetString("DB_PASS"),
			Charset: viper.GetString("DB_CHARSET"),
		},
		Redis: RedisConfig{
			Addr: viper.GetString("REDIS_ADDR"),
			Pass: viper.GetString("REDIS_PASS"),
			DB:   viper.GetInt("REDIS_DB"),
		},
		Comgate: comgateCfg,
		Telegram: TelegramConfig{
			Token:  viper.GetString("TELEGRAM_TOKEN"),
			ChatID: viper.GetInt64("TELEGRAM_CHAT_ID"),
		},
		Poller: PollerConfig{
			Interval: interval,
		},
	}

	return cfg, nil
}

// DSN returns the MySQL DSN string for GORM.
func (d *DatabaseConfig) DSN() string {
	return d.User + ":" + d.Pass + "@tcp(" + d.Host + ":" + d.Port + ")/" + d.Name + "?charset=" + d.Charset + "&parseTime=True&loc=Local"
}
