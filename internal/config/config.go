package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const sandboxAPIURL = "https://api.sandbox.checkout.com"

type Config struct {
	Server   ServerConfig
	Checkout CheckoutConfig
}

type ServerConfig struct {
	Port int
	Env  string // "development", "production"
}

type CheckoutConfig struct {
	SecretKey string
	PublicKey string
	BaseURL   string
}

// Load reads configuration from .env file and environment variables.
// Both Checkout credentials are required: the HTTP server refuses to
// start without them rather than failing on the first provider call.
func Load() (*Config, error) {
	cfg := load()

	if cfg.Checkout.SecretKey == "" || cfg.Checkout.PublicKey == "" {
		return nil, fmt.Errorf("CKO_SECRET_KEY and CKO_PUBLIC_KEY must be set in environment variables")
	}

	return cfg, nil
}

// LoadLenient reads the same configuration but does not require the
// Checkout credentials up front. The MCP server starts without them;
// missing keys surface as authentication errors on the first provider call.
func LoadLenient() *Config {
	return load()
}

func load() *Config {
	// Load .env file (ignore error if missing)
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("PORT", 5000)
	viper.SetDefault("APP_ENV", "production")
	viper.SetDefault("CKO_API_URL", sandboxAPIURL)

	return &Config{
		Server: ServerConfig{
			Port: viper.GetInt("PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		Checkout: CheckoutConfig{
			SecretKey: viper.GetString("CKO_SECRET_KEY"),
			PublicKey: viper.GetString("CKO_PUBLIC_KEY"),
			BaseURL:   viper.GetString("CKO_API_URL"),
		},
	}
}
