package mixnet

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type Network string

const (
	MainNet Network = "mainnet"
	SandBox Network = "sandbox"
)

const (
	// Denom is the display denomination of the staking token.
	Denom = "NYM"
	// DenomMinor is the on-chain micro denomination.
	DenomMinor = "unym"
	// DenomExponent converts between minor and display units (1 NYM = 10^6 unym).
	DenomExponent = 6
)

type Config struct {
	Network    Network
	APIURL     string
	Timeout    time.Duration
	RetryCount int
	RetryDelay time.Duration
}

// NodeID identifies a bonded node inside the current epoch. Zero is never a
// valid id; bonded nodes are numbered from 1.
type NodeID uint32

// BondedNode is the directory record for a node currently bonded to the
// network, keyed by its ed25519 identity key.
type BondedNode struct {
	NodeID      NodeID `json:"node_id"`
	IdentityKey string `json:"identity_key"`
	Owner       string `json:"owner"`
}

type Balance struct {
	Amount      decimal.Decimal
	Denom       string
	LastUpdated time.Time
}

// FeeQuote is the estimated cost of a prospective transaction. It is only
// meaningful for the exact (node, amount) pair that produced it.
type FeeQuote struct {
	Amount decimal.Decimal
	Denom  string
}

// DelegationRequest is the fully validated, quoted request handed to the
// wallet gateway for signing and broadcast.
type DelegationRequest struct {
	Address string
	NodeID  NodeID
	Amount  decimal.Decimal
	Denom   string
	Fee     FeeQuote
}

type BalanceCache struct {
	balances map[string]*Balance
	mu       sync.RWMutex
	ttl      time.Duration
	stop     chan struct{}
}

type ErrorType string

const (
	ErrNetworkConnection  ErrorType = "network_connection"
	ErrNodeNotBonded      ErrorType = "node_not_bonded"
	ErrInvalidIdentityKey ErrorType = "invalid_identity_key"
	ErrSimulationRejected ErrorType = "simulation_rejected"
	ErrTransactionFailed  ErrorType = "transaction_failed"
	ErrNodeUnavailable    ErrorType = "node_unavailable"
	ErrRateLimited        ErrorType = "rate_limited"
	ErrTimeout            ErrorType = "timeout"
)

type MixnetError struct {
	Type    ErrorType
	Message string
	Code    int
	Cause   error
}

func (e *MixnetError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

type NetworkStatus struct {
	Connected   bool
	APIURL      string
	LastChecked time.Time
	BlockHeight uint64
	NetworkID   string
}
