package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	// GatewayURL is the base URL of the exchange gateway API.
	GatewayURL string

	// WalletBridgeURL points at the local WebLN wallet bridge. Empty means
	// no wallet is available and the swap feature is gated off.
	WalletBridgeURL string

	// PollIntervalSec is how often order status is polled, in seconds.
	PollIntervalSec int

	// RequestTimeoutSec bounds individual gateway and wallet requests.
	RequestTimeoutSec int
}

var globalConfig *Config

// Load reads configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetConfigName(".ln-swap")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	// Set default values
	viper.SetDefault("poll_interval_sec", 5)
	viper.SetDefault("request_timeout_sec", 30)

	// Read from environment variables
	viper.SetEnvPrefix("LN_SWAP")
	viper.AutomaticEnv()

	// Read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{
		GatewayURL:        viper.GetString("gateway_url"),
		WalletBridgeURL:   viper.GetString("wallet_bridge_url"),
		PollIntervalSec:   viper.GetInt("poll_interval_sec"),
		RequestTimeoutSec: viper.GetInt("request_timeout_sec"),
	}

	if cfg.GatewayURL == "" {
		return nil, fmt.Errorf("gateway URL not found. Please set LN_SWAP_GATEWAY_URL environment variable or create a .ln-swap.yaml config file")
	}

	globalConfig = cfg
	return cfg, nil
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		return cfg
	}
	return globalConfig
}

// Set updates the global configuration
func Set(cfg *Config) {
	globalConfig = cfg
}

// PollInterval returns the polling interval as a duration
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSec) * time.Second
}

// RequestTimeout returns the request timeout as a duration
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}
