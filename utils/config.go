package utils

import (
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config carries the process configuration resolved from the environment.
type Config struct {
	Port       string
	MongoURI   string
	JWTSecret  string
	BcryptCost int
	TokenTTL   time.Duration
}

// LoadConfig reads configuration from environment variables, applying
// defaults for anything unset.
func LoadConfig() Config {
	cfg := Config{
		Port:       os.Getenv("PORT"),
		MongoURI:   os.Getenv("MONGO_URL"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		BcryptCost: bcrypt.DefaultCost,
		TokenTTL:   7 * 24 * time.Hour,
	}
	if cfg.Port == "" {
		cfg.Port = "8000"
	}
	if cfg.MongoURI == "" {
		cfg.MongoURI = "mongodb://localhost:27017"
	}
	if cost := os.Getenv("BCRYPT_COST"); cost != "" {
		if n, err := strconv.Atoi(cost); err == nil {
			cfg.BcryptCost = n
		}
	}
	return cfg
}
