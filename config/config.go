package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort                    string `mapstructure:"APP_PORT"`
	DatabaseURL                string `mapstructure:"DATABASE_URL"`
	Env                        string `mapstructure:"ENV"`
	JWTSecret                  string `mapstructure:"JWT_SECRET"`
	LogLevel                   string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin          int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	HealthCheckIntervalSeconds int    `mapstructure:"HEALTH_CHECK_INTERVAL_SECONDS"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisWorkerDB int    `mapstructure:"REDIS_WORKER_DB"`

	// Payment gateways.
	StripeKey       string `mapstructure:"STRIPE_KEY"`
	AuthNetLoginID  string `mapstructure:"AUTHNET_LOGIN_ID"`
	AuthNetTransKey string `mapstructure:"AUTHNET_TRANSACTION_KEY"`
	AuthNetEndpoint string `mapstructure:"AUTHNET_ENDPOINT"`

	// Partner aggregation.
	AggregationCacheTTLSeconds int    `mapstructure:"AGGREGATION_CACHE_TTL_SECONDS"`
	AggregationWarmMinutes     int    `mapstructure:"AGGREGATION_WARM_MINUTES"`
	SkyTripsBaseURL            string `mapstructure:"SKYTRIPS_BASE_URL"`
	VoyagioBaseURL             string `mapstructure:"VOYAGIO_BASE_URL"`
	JetQuestBaseURL            string `mapstructure:"JETQUEST_BASE_URL"`
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
	viper.SetDefault("HEALTH_CHECK_INTERVAL_SECONDS", 60)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_WORKER_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("AUTHNET_LOGIN_ID", "")
	viper.SetDefault("AUTHNET_TRANSACTION_KEY", "")
	viper.SetDefault("AUTHNET_ENDPOINT", "https://apitest.authorize.net/xml/v1/request.api")
	viper.SetDefault("AGGREGATION_CACHE_TTL_SECONDS", 30)
	viper.SetDefault("AGGREGATION_WARM_MINUTES", 5)
	viper.SetDefault("SKYTRIPS_BASE_URL", "https://api.skytrips.example.com")
	viper.SetDefault("VOYAGIO_BASE_URL", "https://api.voyagio.example.com")
	viper.SetDefault("JETQUEST_BASE_URL", "https://api.jetquest.example.com")

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
