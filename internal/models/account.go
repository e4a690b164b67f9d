package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil/bech32"

	"rhystmorgan/nymWallet/internal/mixnet"
)

// AddressPrefix is the bech32 human-readable part of account addresses.
const AddressPrefix = "n"

// Account is the active account the wizard operates on. Keys never live
// here; signing happens behind the wallet gateway.
type Account struct {
	Name          string          `json:"name"`
	Address       string          `json:"address"`
	CachedBalance *mixnet.Balance `json:"-"`
	LastSync      time.Time       `json:"last_sync"`
}

func NewAccount(name, address string) (*Account, error) {
	if err := ValidateAddress(address); err != nil {
		return nil, err
	}

	if strings.TrimSpace(name) == "" {
		name = "default"
	}

	return &Account{
		Name:    name,
		Address: address,
	}, nil
}

// ValidateAddress checks a bech32 account address against the network's
// prefix and checksum.
func ValidateAddress(address string) error {
	address = strings.TrimSpace(address)

	if address == "" {
		return fmt.Errorf("address cannot be empty")
	}

	prefix, _, err := bech32.Decode(address)
	if err != nil {
		return fmt.Errorf("invalid address format")
	}

	if prefix != AddressPrefix {
		return fmt.Errorf("address must start with %s1", AddressPrefix)
	}

	return nil
}

func (a *Account) SetBalance(balance *mixnet.Balance) {
	copied := *balance
	a.CachedBalance = &copied
	a.LastSync = time.Now()
}
