package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Service ServiceConfig `yaml:"service"`
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
}

func LoadConfig() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/connect.yaml"
	}

	// Ensure absolute path
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Environment overrides the file for the Stripe key
	if key := os.Getenv("STRIPE_SECRET_KEY"); key != "" {
		cfg.Service.StripeSecretKey = key
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Service.DefaultCountry == "" {
		c.Service.DefaultCountry = "US"
	}
	if c.Service.DefaultCurrency == "" {
		c.Service.DefaultCurrency = "usd"
	}
	if c.Store.Path == "" {
		c.Store.Path = "./data/accounts.json"
	}
	if c.Server.HTTP.Port == 0 {
		c.Server.HTTP.Port = 6969
	}
}
