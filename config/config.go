package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	SessionTTLMinutes int    `mapstructure:"SESSION_TTL_MINUTES"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Admin bootstrap credentials, seeded once if absent.
	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`
	AdminUsername string `mapstructure:"ADMIN_USERNAME"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`

	// One provider endpoint per travel product. An empty URL means the
	// product has no provider and requests for it end up cancelled.
	ProviderFlightsURL  string `mapstructure:"PROVIDER_FLIGHTS_URL"`
	ProviderLodgingURL  string `mapstructure:"PROVIDER_LODGING_URL"`
	ProviderPackagesURL string `mapstructure:"PROVIDER_PACKAGES_URL"`

	ProviderTimeoutSeconds int `mapstructure:"PROVIDER_TIMEOUT_SECONDS"`
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
	viper.SetDefault("SESSION_TTL_MINUTES", 120)
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	// Keys with no useful default still need registering, or AutomaticEnv
	// never surfaces them through Unmarshal.
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("ADMIN_EMAIL", "")
	viper.SetDefault("ADMIN_USERNAME", "")
	viper.SetDefault("ADMIN_PASSWORD", "")
	viper.SetDefault("PROVIDER_FLIGHTS_URL", "")
	viper.SetDefault("PROVIDER_LODGING_URL", "")
	viper.SetDefault("PROVIDER_PACKAGES_URL", "")
	viper.SetDefault("PROVIDER_TIMEOUT_SECONDS", 30)

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

// ProviderURLs maps each travel product to its configured endpoint.
func ProviderURLs() map[string]string {
	return map[string]string{
		"flights":  AppConfig.ProviderFlightsURL,
		"lodging":  AppConfig.ProviderLodgingURL,
		"packages": AppConfig.ProviderPackagesURL,
	}
}
