package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application, loaded from file or
// environment variables.
type Config struct {
	ServerAddress      string        `mapstructure:"SERVER_ADDRESS"`
	DBSource           string        `mapstructure:"DB_SOURCE"`
	ElasticURL         string        `mapstructure:"ELASTIC_URL"`
	ElasticIndex       string        `mapstructure:"ELASTIC_INDEX"`
	SearchTimeout      time.Duration `mapstructure:"SEARCH_TIMEOUT"`
	RegionCap          int           `mapstructure:"REGION_CAP"`
	RegionRadiusMeters float64       `mapstructure:"REGION_RADIUS_METERS"`
	RateLimit          int           `mapstructure:"RATE_LIMIT"`
	RateLimitWindow    time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`
}

// LoadConfig reads configuration from app.env in the given path, with
// environment variables taking precedence.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_ADDRESS", ":8080")
	viper.SetDefault("ELASTIC_URL", "http://localhost:9200")
	viper.SetDefault("ELASTIC_INDEX", "places")
	viper.SetDefault("SEARCH_TIMEOUT", "5s")
	viper.SetDefault("REGION_CAP", 20)
	viper.SetDefault("REGION_RADIUS_METERS", 150)
	viper.SetDefault("RATE_LIMIT", 120)
	viper.SetDefault("RATE_LIMIT_WINDOW", "1m")

	viper.AutomaticEnv()

	if err = viper.ReadInConfig(); err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
