package delegation

import (
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/shopspring/decimal"

	"rhystmorgan/nymWallet/internal/mixnet"
)

// IdentityKeyLength is the decoded size of a node identity key (ed25519
// public key).
const IdentityKeyLength = 32

// ValidateIdentityKey checks the canonical textual form of a node identity
// key: base58, decoding to exactly 32 bytes. Malformed keys are rejected here
// so they never reach the directory.
func ValidateIdentityKey(key string) error {
	key = strings.TrimSpace(key)

	if key == "" {
		return fmt.Errorf("identity key cannot be empty")
	}

	raw, err := base58.Decode(key)
	if err != nil {
		return fmt.Errorf("identity key is not valid base58")
	}

	if len(raw) != IdentityKeyLength {
		return fmt.Errorf("identity key must decode to %d bytes", IdentityKeyLength)
	}

	return nil
}

// ParseAmount parses a user-entered token amount. Positive, at most
// DenomExponent decimal places.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)

	if raw == "" {
		return decimal.Zero, fmt.Errorf("amount cannot be empty")
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount format")
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("amount must be greater than 0")
	}

	if amount.Exponent() < -mixnet.DenomExponent {
		return decimal.Zero, fmt.Errorf("amount cannot have more than %d decimal places", mixnet.DenomExponent)
	}

	return amount, nil
}

// ValidateAmount evaluates the delegation amount rules in order and returns
// the first failing rule's message, or "" when the amount is accepted. Pure
// given its three inputs.
//
// While the balance is still loading, sufficiency is indeterminate and rule 3
// is skipped.
func ValidateAmount(raw string, minAmount decimal.Decimal, balance Balance) string {
	amount, err := ParseAmount(raw)
	if err != nil {
		return "invalid amount"
	}

	if amount.LessThan(minAmount) {
		return fmt.Sprintf("minimum delegation amount is %s %s", minAmount.String(), mixnet.Denom)
	}

	if balance.Status == BalanceAvailable && amount.GreaterThan(balance.Amount) {
		return "insufficient funds"
	}

	return ""
}
