package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"rhystmorgan/nymWallet/internal/mixnet"
)

type Config struct {
	Network        string          `json:"network"`
	APIURL         string          `json:"api_url"`
	Account        string          `json:"account"`
	AccountName    string          `json:"account_name"`
	Timeout        time.Duration   `json:"timeout"`
	RetryCount     int             `json:"retry_count"`
	CacheTTL       time.Duration   `json:"cache_ttl"`
	MinDelegation  decimal.Decimal `json:"min_delegation"`
	DebounceWindow time.Duration   `json:"debounce_window"`
}

func LoadConfig() (*Config, error) {
	config := &Config{
		Network:        getEnvOrDefault("NYMTERM_NETWORK", "mainnet"),
		APIURL:         getEnvOrDefault("NYMTERM_API_URL", ""),
		Account:        getEnvOrDefault("NYMTERM_ACCOUNT", ""),
		AccountName:    getEnvOrDefault("NYMTERM_ACCOUNT_NAME", ""),
		Timeout:        parseDurationOrDefault("NYMTERM_TIMEOUT", 30*time.Second),
		RetryCount:     parseIntOrDefault("NYMTERM_RETRY_COUNT", 3),
		CacheTTL:       parseDurationOrDefault("NYMTERM_CACHE_TTL", 30*time.Second),
		MinDelegation:  parseDecimalOrDefault("NYMTERM_MIN_DELEGATION", decimal.NewFromInt(10)),
		DebounceWindow: parseDurationOrDefault("NYMTERM_DEBOUNCE", 500*time.Millisecond),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	switch c.Network {
	case "mainnet", "sandbox":
		// Valid networks
	default:
		return fmt.Errorf("invalid network: %s (must be 'mainnet' or 'sandbox')", c.Network)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %v", c.Timeout)
	}

	if c.RetryCount < 0 {
		return fmt.Errorf("retry count must be non-negative, got: %d", c.RetryCount)
	}

	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got: %v", c.CacheTTL)
	}

	if c.MinDelegation.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("minimum delegation must be positive, got: %s", c.MinDelegation.String())
	}

	if c.DebounceWindow <= 0 {
		return fmt.Errorf("debounce window must be positive, got: %v", c.DebounceWindow)
	}

	return nil
}

func (c *Config) ToMixnetConfig() mixnet.Config {
	var network mixnet.Network
	switch c.Network {
	case "mainnet":
		network = mixnet.MainNet
	case "sandbox":
		network = mixnet.SandBox
	default:
		network = mixnet.MainNet // Default fallback
	}

	return mixnet.Config{
		Network:    network,
		APIURL:     c.APIURL,
		Timeout:    c.Timeout,
		RetryCount: c.RetryCount,
		RetryDelay: 2 * time.Second,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func parseDecimalOrDefault(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if parsed, err := decimal.NewFromString(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func GetDefaultConfig() *Config {
	return &Config{
		Network:        "mainnet",
		APIURL:         "",
		Timeout:        30 * time.Second,
		RetryCount:     3,
		CacheTTL:       30 * time.Second,
		MinDelegation:  decimal.NewFromInt(10),
		DebounceWindow: 500 * time.Millisecond,
	}
}

func IsDebugEnabled() bool {
	return os.Getenv("NYMTERM_DEBUG") == "true" || os.Getenv("NYMTERM_DEBUG") == "1"
}
