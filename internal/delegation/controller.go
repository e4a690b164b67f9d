package delegation

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"rhystmorgan/nymWallet/internal/mixnet"
)

// Service is the slice of the wallet gateway the controller depends on.
// *mixnet.Client satisfies it; tests substitute stubs.
type Service interface {
	ResolveNodeIdentity(identityKey string) (*mixnet.BondedNode, error)
	GetBalance(address string) (*mixnet.Balance, error)
	SimulateDelegationFee(nodeID mixnet.NodeID, amount decimal.Decimal) (*mixnet.FeeQuote, error)
	Delegate(req mixnet.DelegationRequest) (string, error)
}

// DefaultDebounce is the quiet period after the last identity-key edit before
// a directory lookup is issued.
const DefaultDebounce = 500 * time.Millisecond

// Controller drives one delegation attempt: it owns the Session, reacts to
// field edits and user actions, and runs every asynchronous completion
// through staleness checks so that the last input always wins.
//
// All methods must be called from the single update loop; returned tea.Cmd
// values carry the asynchronous work and their results come back through
// Update.
type Controller struct {
	service       Service
	address       string
	minDelegation decimal.Decimal
	debounce      time.Duration

	session Session

	// Generation counters. A bump supersedes every outstanding timer or
	// in-flight call of that kind: stale completions compare against the
	// current value and are dropped.
	resolveSeq int
	feeSeq     int
}

func NewController(service Service, address string, minDelegation decimal.Decimal, debounce time.Duration) *Controller {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Controller{
		service:       service,
		address:       address,
		minDelegation: minDelegation,
		debounce:      debounce,
		session: Session{
			Phase:   PhaseEditing,
			Balance: Balance{Status: BalanceLoading},
		},
	}
}

// Session returns a read-only snapshot sufficient to render phase, errors and
// quote.
func (c *Controller) Session() Session {
	s := c.session
	if s.FeeQuote != nil {
		quote := *s.FeeQuote
		s.FeeQuote = &quote
	}
	return s
}

func (c *Controller) MinDelegation() decimal.Decimal {
	return c.minDelegation
}

// Messages produced by the controller's own commands.

type resolveTickMsg struct {
	seq int
}

type ResolutionMsg struct {
	Key  string
	Node *mixnet.BondedNode
	Err  error
}

type BalanceMsg struct {
	Address string
	Balance *mixnet.Balance
	Err     error
}

type FeeQuoteMsg struct {
	seq    int
	NodeID mixnet.NodeID
	Amount decimal.Decimal
	Quote  *mixnet.FeeQuote
	Err    error
}

type SubmittedMsg struct {
	TxHash string
	Err    error
}

func (c *Controller) Init() tea.Cmd {
	if c.address == "" {
		return nil
	}
	return c.fetchBalance(c.address)
}

func (c *Controller) fetchBalance(address string) tea.Cmd {
	return func() tea.Msg {
		balance, err := c.service.GetBalance(address)
		return BalanceMsg{Address: address, Balance: balance, Err: err}
	}
}

// SetAddress switches the active account. The balance is refetched once per
// distinct non-empty address; completions for the old address are discarded.
func (c *Controller) SetAddress(address string) tea.Cmd {
	if address == c.address {
		return nil
	}

	c.address = address
	c.session.Balance = Balance{Status: BalanceLoading}

	if address == "" {
		return nil
	}
	return c.fetchBalance(address)
}

// SetIdentityKey handles an edit of the node identity key field. The resolved
// node id is always invalidated; a well-formed key schedules a debounced
// directory lookup, a malformed one is rejected locally without any remote
// call.
func (c *Controller) SetIdentityKey(key string) tea.Cmd {
	if c.session.Phase == PhaseSubmitting || c.session.Phase == PhaseClosed {
		return nil
	}
	// The session keeps the key in trimmed form: staleness comparisons and
	// the eventual lookup must see the same bytes, and pasted whitespace
	// must never reach the directory.
	key = strings.TrimSpace(key)
	if key == c.session.RawIdentityKey {
		return nil
	}

	c.toEditing()
	c.session.RawIdentityKey = key
	c.session.ResolvedNodeID = 0
	c.session.IdentityWarning = ""
	c.resolveSeq++

	if key == "" {
		c.session.IdentityError = ""
		return nil
	}

	if err := ValidateIdentityKey(key); err != nil {
		c.session.IdentityError = err.Error()
		return nil
	}

	c.session.IdentityError = ""
	seq := c.resolveSeq
	return tea.Tick(c.debounce, func(time.Time) tea.Msg {
		return resolveTickMsg{seq: seq}
	})
}

// SetAmount handles an edit of the amount field.
func (c *Controller) SetAmount(raw string) tea.Cmd {
	if c.session.Phase == PhaseSubmitting || c.session.Phase == PhaseClosed {
		return nil
	}

	c.toEditing()
	c.session.RawAmount = raw
	c.session.AmountError = ValidateAmount(raw, c.minDelegation, c.session.Balance)
	return nil
}

// toEditing re-enters the editing phase, discarding any quote or fee failure
// from a previous attempt along with in-flight estimate calls.
func (c *Controller) toEditing() {
	switch c.session.Phase {
	case PhaseAwaitingFee, PhaseConfirming, PhaseFeeError:
		c.session.Phase = PhaseEditing
		c.session.FeeQuote = nil
		c.session.FeeError = ""
		c.feeSeq++
	}
}

// CanConfirm reports whether the session is ready for fee estimation. The
// presentation layer uses it to enable the confirm action; Confirm re-checks
// it defensively either way.
func (c *Controller) CanConfirm() bool {
	return c.session.Phase == PhaseEditing &&
		c.session.ResolvedNodeID != 0 &&
		c.session.IdentityError == "" &&
		ValidateAmount(c.session.RawAmount, c.minDelegation, c.session.Balance) == ""
}

// Confirm issues the fee simulation for the current (node, amount) pair. A
// no-op unless the session is fully valid.
func (c *Controller) Confirm() tea.Cmd {
	if !c.CanConfirm() {
		return nil
	}

	amount, err := ParseAmount(c.session.RawAmount)
	if err != nil {
		return nil
	}

	c.session.Phase = PhaseAwaitingFee
	c.session.FeeError = ""
	c.feeSeq++

	seq := c.feeSeq
	nodeID := c.session.ResolvedNodeID
	return func() tea.Msg {
		quote, err := c.service.SimulateDelegationFee(nodeID, amount)
		return FeeQuoteMsg{seq: seq, NodeID: nodeID, Amount: amount, Quote: quote, Err: err}
	}
}

// Retry re-issues the fee simulation after a failure, with unchanged inputs.
func (c *Controller) Retry() tea.Cmd {
	if c.session.Phase != PhaseFeeError {
		return nil
	}

	c.session.Phase = PhaseEditing
	c.session.FeeError = ""
	return c.Confirm()
}

// Back dismisses a held quote or a fee failure and returns to editing with
// the inputs intact. A no-op in any other phase.
func (c *Controller) Back() {
	c.toEditing()
}

// ConfirmQuote accepts the held quote and hands the finished request to the
// gateway. The session ends when the hand-off completes, regardless of the
// submission outcome; tracking the transaction is the gateway's concern.
func (c *Controller) ConfirmQuote() tea.Cmd {
	if c.session.Phase != PhaseConfirming || c.session.FeeQuote == nil {
		return nil
	}

	amount, err := ParseAmount(c.session.RawAmount)
	if err != nil {
		return nil
	}

	req := mixnet.DelegationRequest{
		Address: c.address,
		NodeID:  c.session.ResolvedNodeID,
		Amount:  amount,
		Denom:   mixnet.Denom,
		Fee:     *c.session.FeeQuote,
	}

	c.session.Phase = PhaseSubmitting
	c.session.FeeQuote = nil
	return func() tea.Msg {
		txHash, err := c.service.Delegate(req)
		return SubmittedMsg{TxHash: txHash, Err: err}
	}
}

// Close abandons the session unconditionally. In-flight completions are
// dropped, not merely ignored: the generation bump plus the terminal phase
// guarantee they can never touch the session again.
func (c *Controller) Close() {
	c.session.Phase = PhaseClosed
	c.resolveSeq++
	c.feeSeq++
}

// Update applies an asynchronous completion to the session. Every branch
// first proves the result still belongs to the current input.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	if c.session.Phase == PhaseClosed {
		return nil
	}

	switch msg := msg.(type) {
	case resolveTickMsg:
		// The quiet period ended. Only the newest timer may fire a lookup.
		if msg.seq != c.resolveSeq {
			return nil
		}

		key := c.session.RawIdentityKey
		return func() tea.Msg {
			node, err := c.service.ResolveNodeIdentity(key)
			return ResolutionMsg{Key: key, Node: node, Err: err}
		}

	case ResolutionMsg:
		// Last input wins: a response for a superseded key is discarded no
		// matter when it completes.
		if msg.Key != c.session.RawIdentityKey {
			return nil
		}

		if msg.Err != nil {
			if mixnet.IsNotBonded(msg.Err) {
				c.session.ResolvedNodeID = 0
				c.session.IdentityError = "node not currently bonded"
			} else {
				// Transient lookup failure: the node is temporarily
				// unknown. The next edit cycle retries implicitly.
				c.session.IdentityWarning = "could not verify node, check your connection"
			}
			return nil
		}

		c.session.ResolvedNodeID = msg.Node.NodeID
		c.session.IdentityError = ""
		c.session.IdentityWarning = ""
		return nil

	case BalanceMsg:
		if msg.Address != c.address {
			return nil
		}

		if msg.Err != nil {
			warning := "balance unavailable"
			if mixnetErr := mixnet.ClassifyError(msg.Err); mixnetErr != nil {
				warning = mixnetErr.UserMessage()
			}
			c.session.Balance = Balance{Status: BalanceLoading, Warning: warning}
			return nil
		}

		c.session.Balance = Balance{Status: BalanceAvailable, Amount: msg.Balance.Amount}
		if c.session.RawAmount != "" {
			c.session.AmountError = ValidateAmount(c.session.RawAmount, c.minDelegation, c.session.Balance)
		}
		return nil

	case FeeQuoteMsg:
		// Any edit since the estimate was issued bumped feeSeq, so a stale
		// quote for an outdated (node, amount) pair can never be applied.
		if c.session.Phase != PhaseAwaitingFee || msg.seq != c.feeSeq {
			return nil
		}

		if msg.Err != nil {
			c.session.Phase = PhaseFeeError
			c.session.FeeError = feeErrorMessage(msg.Err)
			return nil
		}

		c.session.FeeQuote = msg.Quote
		c.session.Phase = PhaseConfirming
		return nil

	case SubmittedMsg:
		// Hand-off done. The session is discarded either way; submission
		// result handling belongs to the gateway.
		c.session.Phase = PhaseClosed
		return nil
	}

	return nil
}

func feeErrorMessage(err error) string {
	if mixnetErr, ok := err.(*mixnet.MixnetError); ok {
		return mixnetErr.UserMessage()
	}
	return err.Error()
}
