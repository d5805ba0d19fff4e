package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Booking platform API hosting the schedule collaborators.
	BookingAPIBase    string `mapstructure:"BOOKING_API_BASE"`
	BookingAPITimeout int    `mapstructure:"BOOKING_API_TIMEOUT_SECONDS"`

	// Geocoding collaborator.
	GeocodeAPIBase      string `mapstructure:"GEOCODE_API_BASE"`
	GeocodeAPITimeout   int    `mapstructure:"GEOCODE_API_TIMEOUT_SECONDS"`
	GeocodeCacheTTLMins int    `mapstructure:"GEOCODE_CACHE_TTL_MINUTES"`

	// Redis configuration (geocode cache).
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
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
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("BOOKING_API_BASE", "http://localhost:9000/api")
	viper.SetDefault("BOOKING_API_TIMEOUT_SECONDS", 10)
	viper.SetDefault("GEOCODE_API_BASE", "https://nominatim.openstreetmap.org")
	viper.SetDefault("GEOCODE_API_TIMEOUT_SECONDS", 5)
	viper.SetDefault("GEOCODE_CACHE_TTL_MINUTES", 1440)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)

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
