// Copyright (c) 2026 PressArt. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. Outside production a
'.env' file is overlaid first with 'joho/godotenv'.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (Redis, CDN builders, API client) via constructors.
  - Zero Hidden State: No global variables are used to store config. The image
    CDN selection in particular is a value here, never a package-level flag.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the storefront API and CLI.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Key-Value Cache (Redis). Only the API server requires it.
	RedisURL     string        `env:"REDIS_URL"`
	GuestCartTTL time.Duration `env:"GUEST_CART_TTL" envDefault:"720h"`

	// External store API (auth + cart persistence)
	StoreAPIBaseURL string        `env:"STORE_API_BASE_URL" envDefault:"http://localhost:10000/api"`
	StoreAPITimeout time.Duration `env:"STORE_API_TIMEOUT"  envDefault:"10s"`

	// Image CDN strategy: local, imagekit or cloudinary
	ImageCDN            string `env:"IMAGE_CDN"             envDefault:"cloudinary"`
	LocalImageDir       string `env:"LOCAL_IMAGE_DIR"       envDefault:"/Images"`
	LocalImageExt       string `env:"LOCAL_IMAGE_EXT"       envDefault:".avif"`
	ImageKitURLEndpoint string `env:"IMAGEKIT_URL_ENDPOINT"`
	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME" envDefault:"djdbzgoxk"`

	// Checkout hand-off channel (messaging deep link)
	CheckoutBaseURL string `env:"CHECKOUT_BASE_URL" envDefault:"https://wa.me/"`
	CheckoutPhone   string `env:"CHECKOUT_PHONE"    envDefault:"+1234567890"`

	// Session expiry polling for long-lived clients
	SessionCheckInterval time.Duration `env:"SESSION_CHECK_INTERVAL" envDefault:"5m"`

	// StateDir is where the CLI keeps its guest cart and session files.
	StateDir string `env:"PRESSART_STATE_DIR"`

	// Cross-Origin Resource Sharing
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"pressart.app"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
//
// When ENVIRONMENT is not "production" a '.env' file in the working directory
// is loaded first. A missing file is not an error.
func Load() (*Config, error) {

	if os.Getenv("ENVIRONMENT") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: failed to load .env file: %w", err)
		}
	}

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the process is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the process is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// OriginSuffix returns the allowed CORS origin suffix for non-development modes.
func (c *Config) OriginSuffix() string {
	return c.AllowedOriginSuffix
}
