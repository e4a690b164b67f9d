package delegation

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/shopspring/decimal"
)

func validKey() string {
	return base58.Encode(bytes.Repeat([]byte{0x42}, IdentityKeyLength))
}

func TestValidateIdentityKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"valid 32-byte key", validKey(), false},
		{"valid key with whitespace", "  " + validKey() + "  ", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"invalid base58 characters", "0OIl!!not-base58", true},
		{"too short", base58.Encode(bytes.Repeat([]byte{0x42}, 16)), true},
		{"too long", base58.Encode(bytes.Repeat([]byte{0x42}, 33)), true},
	}

	for _, test := range tests {
		err := ValidateIdentityKey(test.key)
		if test.wantErr && err == nil {
			t.Errorf("%s: expected error, got nil", test.name)
		}
		if !test.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"integer", "15", "15", false},
		{"decimal", "0.5", "0.5", false},
		{"six decimal places", "1.000001", "1.000001", false},
		{"trimmed", " 10 ", "10", false},
		{"empty", "", "", true},
		{"not a number", "abc", "", true},
		{"zero", "0", "", true},
		{"negative", "-5", "", true},
		{"too many decimals", "1.0000001", "", true},
	}

	for _, test := range tests {
		amount, err := ParseAmount(test.raw)
		if test.wantErr {
			if err == nil {
				t.Errorf("%s: expected error, got %s", test.name, amount.String())
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}
		if amount.String() != test.want {
			t.Errorf("%s: expected %s, got %s", test.name, test.want, amount.String())
		}
	}
}

func TestValidateAmountRulePrecedence(t *testing.T) {
	min := decimal.NewFromInt(10)
	available := Balance{Status: BalanceAvailable, Amount: decimal.NewFromInt(100)}
	loading := Balance{Status: BalanceLoading}

	tests := []struct {
		name    string
		raw     string
		balance Balance
		want    string
	}{
		{"empty is invalid", "", available, "invalid amount"},
		{"garbage is invalid", "12x", available, "invalid amount"},
		{"below minimum", "9.5", available, "minimum delegation amount is 10 NYM"},
		{"below minimum regardless of balance", "5", loading, "minimum delegation amount is 10 NYM"},
		{"over balance", "150", available, "insufficient funds"},
		{"over balance even above minimum", "101", available, "insufficient funds"},
		{"accepted at minimum", "10", available, ""},
		{"accepted at balance", "100", available, ""},
		{"accepted in range", "15", available, ""},
		{"sufficiency indeterminate while loading", "5000", loading, ""},
	}

	for _, test := range tests {
		got := ValidateAmount(test.raw, min, test.balance)
		if got != test.want {
			t.Errorf("%s: expected %q, got %q", test.name, test.want, got)
		}
	}
}

func TestValidateAmountMinimumMessageCarriesDenom(t *testing.T) {
	msg := ValidateAmount("1", decimal.NewFromInt(10), Balance{Status: BalanceLoading})
	if !strings.Contains(msg, "10") || !strings.Contains(msg, "NYM") {
		t.Errorf("minimum message should name the threshold and denom, got %q", msg)
	}
}
