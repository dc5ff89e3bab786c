package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string   `env:"PORT,      default=8080"`
	Env       string   `env:"ENV,       default=development"`
	JWTSecret string   `env:"JWT_SECRET"`
	LogLevel  string   `env:"LOG_LEVEL, default=info"`
	Sectors   []string `env:"SECTORS"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Geocoder GeocoderConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=dashboard"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type GeocoderConfig struct {
	APIKey   string `env:"GEOCODER_API_KEY"`
	BaseURL  string `env:"GEOCODER_BASE_URL, default=https://maps.googleapis.com/maps/api/geocode/json"`
	Language string `env:"GEOCODER_LANGUAGE, default=en"`
	// CacheExpiry is the window after which a cached geocode entry counts as
	// stale. Zero disables expiry.
	CacheExpiry time.Duration `env:"GEOCODER_CACHE_EXPIRY, default=720h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
