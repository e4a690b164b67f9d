package delegation

import (
	"github.com/shopspring/decimal"

	"rhystmorgan/nymWallet/internal/mixnet"
)

// Phase is the controller's position in the delegation flow. Editing is the
// initial phase, Closed is terminal.
type Phase int

const (
	PhaseEditing Phase = iota
	PhaseAwaitingFee
	PhaseConfirming
	PhaseFeeError
	PhaseSubmitting
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "editing"
	case PhaseAwaitingFee:
		return "awaiting_fee"
	case PhaseConfirming:
		return "confirming"
	case PhaseFeeError:
		return "fee_error"
	case PhaseSubmitting:
		return "submitting"
	case PhaseClosed:
		return "closed"
	default:
		return "unknown"
	}
}

type BalanceStatus int

const (
	// BalanceLoading means no usable balance yet; sufficiency checks are
	// indeterminate rather than failing against a stale zero.
	BalanceLoading BalanceStatus = iota
	BalanceAvailable
)

type Balance struct {
	Status BalanceStatus
	Amount decimal.Decimal
	// Warning is set when the last fetch failed. Non-fatal: format and
	// minimum checks stay active while sufficiency stays indeterminate.
	Warning string
}

// Session is the whole state of one delegation attempt. It is owned
// exclusively by the Controller; everyone else sees value copies. One Session
// lives per wizard invocation, created on open and discarded on close or
// submission.
type Session struct {
	RawIdentityKey string
	RawAmount      string

	// ResolvedNodeID is zero until a resolution for the current key
	// succeeds. Any edit to RawIdentityKey clears it.
	ResolvedNodeID mixnet.NodeID

	IdentityError   string
	IdentityWarning string
	AmountError     string

	Balance Balance

	// FeeQuote is non-nil only while Phase is Confirming and belongs to the
	// exact (node, amount) pair that produced it.
	FeeQuote *mixnet.FeeQuote
	FeeError string

	Phase Phase
}
