package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"rhystmorgan/nymWallet/internal/mixnet"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Network != "mainnet" {
		t.Errorf("Expected default network 'mainnet', got '%s'", config.Network)
	}
	if config.Timeout != 30*time.Second {
		t.Errorf("Expected default timeout 30s, got %v", config.Timeout)
	}
	if config.RetryCount != 3 {
		t.Errorf("Expected default retry count 3, got %d", config.RetryCount)
	}
	if !config.MinDelegation.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Expected default minimum delegation 10, got %s", config.MinDelegation.String())
	}
	if config.DebounceWindow != 500*time.Millisecond {
		t.Errorf("Expected default debounce 500ms, got %v", config.DebounceWindow)
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("NYMTERM_NETWORK", "sandbox")
	t.Setenv("NYMTERM_API_URL", "http://localhost:8080")
	t.Setenv("NYMTERM_ACCOUNT", "n1qperwt9wrnkg5k9e5gzfgjppzpqhyav5j24d66")
	t.Setenv("NYMTERM_TIMEOUT", "10s")
	t.Setenv("NYMTERM_RETRY_COUNT", "5")
	t.Setenv("NYMTERM_MIN_DELEGATION", "25.5")
	t.Setenv("NYMTERM_DEBOUNCE", "200ms")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Network != "sandbox" {
		t.Errorf("Expected network 'sandbox', got '%s'", config.Network)
	}
	if config.APIURL != "http://localhost:8080" {
		t.Errorf("Expected API URL 'http://localhost:8080', got '%s'", config.APIURL)
	}
	if config.Account != "n1qperwt9wrnkg5k9e5gzfgjppzpqhyav5j24d66" {
		t.Errorf("Unexpected account: %s", config.Account)
	}
	if config.Timeout != 10*time.Second {
		t.Errorf("Expected timeout 10s, got %v", config.Timeout)
	}
	if config.RetryCount != 5 {
		t.Errorf("Expected retry count 5, got %d", config.RetryCount)
	}
	if !config.MinDelegation.Equal(decimal.RequireFromString("25.5")) {
		t.Errorf("Expected minimum delegation 25.5, got %s", config.MinDelegation.String())
	}
	if config.DebounceWindow != 200*time.Millisecond {
		t.Errorf("Expected debounce 200ms, got %v", config.DebounceWindow)
	}
}

func TestLoadConfigIgnoresMalformedValues(t *testing.T) {
	t.Setenv("NYMTERM_TIMEOUT", "not-a-duration")
	t.Setenv("NYMTERM_RETRY_COUNT", "three")
	t.Setenv("NYMTERM_MIN_DELEGATION", "ten")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Timeout != 30*time.Second {
		t.Errorf("Expected fallback timeout 30s, got %v", config.Timeout)
	}
	if config.RetryCount != 3 {
		t.Errorf("Expected fallback retry count 3, got %d", config.RetryCount)
	}
	if !config.MinDelegation.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Expected fallback minimum delegation 10, got %s", config.MinDelegation.String())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"sandbox network", func(c *Config) { c.Network = "sandbox" }, false},
		{"unknown network", func(c *Config) { c.Network = "moonnet" }, true},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, true},
		{"negative retry count", func(c *Config) { c.RetryCount = -1 }, true},
		{"zero cache TTL", func(c *Config) { c.CacheTTL = 0 }, true},
		{"zero minimum delegation", func(c *Config) { c.MinDelegation = decimal.Zero }, true},
		{"negative debounce", func(c *Config) { c.DebounceWindow = -time.Second }, true},
	}

	for _, test := range tests {
		config := GetDefaultConfig()
		test.modify(config)

		err := config.Validate()
		if test.wantErr && err == nil {
			t.Errorf("%s: expected error, got nil", test.name)
		}
		if !test.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
		}
	}
}

func TestToMixnetConfig(t *testing.T) {
	config := GetDefaultConfig()
	config.Network = "sandbox"
	config.APIURL = "http://localhost:8080"
	config.Timeout = 5 * time.Second

	mixnetConfig := config.ToMixnetConfig()

	if mixnetConfig.Network != mixnet.SandBox {
		t.Errorf("Expected sandbox network, got %s", mixnetConfig.Network)
	}
	if mixnetConfig.APIURL != "http://localhost:8080" {
		t.Errorf("Expected API URL carried over, got '%s'", mixnetConfig.APIURL)
	}
	if mixnetConfig.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", mixnetConfig.Timeout)
	}
}
