package models

import (
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/shopspring/decimal"

	"rhystmorgan/nymWallet/internal/mixnet"
)

// encodeAddress builds a checksum-valid bech32 address for tests.
func encodeAddress(t *testing.T, prefix string) string {
	t.Helper()

	payload := make([]byte, 20)
	for i := range payload {
		payload[i] = byte(i)
	}

	converted, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		t.Fatalf("Failed to convert bits: %v", err)
	}

	address, err := bech32.Encode(prefix, converted)
	if err != nil {
		t.Fatalf("Failed to encode address: %v", err)
	}
	return address
}

func TestValidateAddress(t *testing.T) {
	valid := encodeAddress(t, AddressPrefix)
	wrongPrefix := encodeAddress(t, "cosmos")

	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		{"valid address", valid, false},
		{"valid with whitespace", "  " + valid + "  ", false},
		{"empty", "", true},
		{"wrong prefix", wrongPrefix, true},
		{"bad checksum", valid[:len(valid)-1] + "x", true},
		{"not bech32", "0x1234567890123456789012345678901234567890", true},
	}

	for _, test := range tests {
		err := ValidateAddress(test.address)
		if test.wantErr && err == nil {
			t.Errorf("%s: expected error, got nil", test.name)
		}
		if !test.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
		}
	}
}

func TestNewAccount(t *testing.T) {
	address := encodeAddress(t, AddressPrefix)

	account, err := NewAccount("main", address)
	if err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}

	if account.Name != "main" {
		t.Errorf("Expected name 'main', got '%s'", account.Name)
	}
	if account.Address != address {
		t.Errorf("Expected address %s, got %s", address, account.Address)
	}
}

func TestNewAccountDefaultsName(t *testing.T) {
	address := encodeAddress(t, AddressPrefix)

	account, err := NewAccount("  ", address)
	if err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}

	if account.Name != "default" {
		t.Errorf("Expected name 'default', got '%s'", account.Name)
	}
}

func TestNewAccountRejectsInvalidAddress(t *testing.T) {
	_, err := NewAccount("main", "not-an-address")
	if err == nil {
		t.Error("Expected error for invalid address")
	}
}

func TestSetBalance(t *testing.T) {
	address := encodeAddress(t, AddressPrefix)
	account, err := NewAccount("main", address)
	if err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}

	balance := &mixnet.Balance{
		Amount:      decimal.NewFromInt(100),
		Denom:       mixnet.Denom,
		LastUpdated: time.Now(),
	}
	account.SetBalance(balance)

	if account.CachedBalance == nil {
		t.Fatal("Expected cached balance to be set")
	}
	if !account.CachedBalance.Amount.Equal(balance.Amount) {
		t.Errorf("Expected amount %s, got %s", balance.Amount.String(), account.CachedBalance.Amount.String())
	}
	if account.LastSync.IsZero() {
		t.Error("Expected last sync timestamp to be set")
	}

	// The account keeps its own copy.
	balance.Amount = decimal.Zero
	if account.CachedBalance.Amount.IsZero() {
		t.Error("Mutating the source balance must not affect the account")
	}
}
