package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all environment variables for the storefront service.
type Config struct {
	Port     string
	Env      string
	MongoURI string
	MongoDB  string
	RedisURL string
	CartTTL  time.Duration

	S3Bucket   string
	S3Region   string
	S3Endpoint string // optional, for LocalStack

	OrderTopicARN string // optional, order.created events are skipped when empty

	JWTSecret string
}

// LoadConfig loads environment variables into a Config struct and
// validates the required ones. A .env file is honored when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8087"),
		Env:           getEnv("ENV", "development"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "storefront"),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379"),
		CartTTL:       time.Hour * 24 * 7,
		S3Bucket:      os.Getenv("S3_BUCKET"),
		S3Region:      getEnv("AWS_REGION", "eu-west-2"),
		S3Endpoint:    os.Getenv("AWS_S3_ENDPOINT"),
		OrderTopicARN: os.Getenv("ORDER_SNS_TOPIC_ARN"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
	}

	if ttl := os.Getenv("CART_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid CART_TTL: %w", err)
		}
		cfg.CartTTL = d
	}

	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
