package config

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT, default=8080"`
	Env      string `env:"ENV, default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	MongoURI string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	DBName   string `env:"DB_NAME, default=storefront"`

	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=168h"`

	Braintree BraintreeConfig
}

type BraintreeConfig struct {
	Environment string `env:"BRAINTREE_ENV, default=sandbox"`
	MerchantID  string `env:"BRAINTREE_MERCHANT_ID"`
	PublicKey   string `env:"BRAINTREE_PUBLIC_KEY"`
	PrivateKey  string `env:"BRAINTREE_PRIVATE_KEY"`
}

// Load reads .env (if present) and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}

	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		log.Fatalf("config: %v", err)
	}
	return &cfg
}
