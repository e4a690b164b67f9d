package mixnet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Client talks to the wallet gateway: the REST service that fronts the node
// directory, account balances and transaction signing/broadcast for one
// network. It never holds keys; it submits prepared requests on behalf of a
// configured account address.
type Client struct {
	httpClient *http.Client
	config     Config
	cache      *BalanceCache
	mu         sync.RWMutex
	status     NetworkStatus
}

const (
	DefaultMainnetURL = "https://validator.nymtech.net/api"
	DefaultSandboxURL = "https://sandbox-validator.nymtech.net/api"
	DefaultTimeout    = 30 * time.Second
	DefaultRetryCount = 3
	DefaultRetryDelay = 2 * time.Second
	DefaultCacheTTL   = 30 * time.Second
)

func NewClient(config Config) (*Client, error) {
	if config.APIURL == "" {
		switch config.Network {
		case MainNet:
			config.APIURL = DefaultMainnetURL
		case SandBox:
			config.APIURL = DefaultSandboxURL
		default:
			return nil, fmt.Errorf("unknown network: %s", config.Network)
		}
	}

	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.RetryCount == 0 {
		config.RetryCount = DefaultRetryCount
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = DefaultRetryDelay
	}

	c := &Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		config:     config,
		cache:      NewBalanceCache(DefaultCacheTTL),
		status: NetworkStatus{
			APIURL:      config.APIURL,
			Connected:   false,
			LastChecked: time.Now(),
		},
	}

	c.cache.StartCleanupRoutine(5 * time.Minute)

	if err := c.checkConnection(); err != nil {
		return nil, err
	}

	return c, nil
}

type statusResponse struct {
	BlockHeight uint64 `json:"block_height"`
	Network     string `json:"network"`
}

func (c *Client) checkConnection() error {
	var status statusResponse
	if err := c.doGet("/v1/status", &status); err != nil {
		c.updateStatus(false, 0, "")
		return NewNetworkError("failed to connect to wallet gateway", err)
	}

	c.updateStatus(true, status.BlockHeight, status.Network)
	return nil
}

func (c *Client) updateStatus(connected bool, blockHeight uint64, networkID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status.Connected = connected
	c.status.BlockHeight = blockHeight
	c.status.NetworkID = networkID
	c.status.LastChecked = time.Now()
}

func (c *Client) GetStatus() NetworkStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.status
}

// ResolveNodeIdentity maps a node identity key to its directory record.
// A well-formed key with no bonded node behind it yields ErrNodeNotBonded;
// transport failures come back as retryable network errors. Callers are
// expected to reject malformed keys locally before calling.
func (c *Client) ResolveNodeIdentity(identityKey string) (*BondedNode, error) {
	var node BondedNode
	err := c.doGet("/v1/nodes/bonded/"+identityKey, &node)
	if err != nil {
		if httpErr, ok := err.(*httpStatusError); ok && httpErr.status == http.StatusNotFound {
			return nil, NewNodeNotBondedError(identityKey)
		}
		return nil, NewNetworkError("failed to resolve node identity", err)
	}

	if node.NodeID == 0 {
		return nil, NewNodeNotBondedError(identityKey)
	}

	return &node, nil
}

type balanceResponse struct {
	Amount string `json:"amount"`
	Denom  string `json:"denom"`
}

func (c *Client) GetBalance(address string) (*Balance, error) {
	if cached, found := c.cache.Get(address); found {
		return cached, nil
	}

	balance, err := c.fetchBalanceFromNetwork(address)
	if err != nil {
		return nil, err
	}

	c.cache.Set(address, balance)
	return balance, nil
}

func (c *Client) fetchBalanceFromNetwork(address string) (*Balance, error) {
	var lastErr error

	for attempt := 0; attempt < c.config.RetryCount; attempt++ {
		if attempt > 0 {
			time.Sleep(c.config.RetryDelay * time.Duration(attempt))
		}

		balance, err := c.doFetchBalance(address)
		if err == nil {
			return balance, nil
		}

		lastErr = err
		if mixnetErr := ClassifyError(err); mixnetErr != nil && !mixnetErr.IsRetryable() {
			break
		}
	}

	return nil, ClassifyError(lastErr)
}

func (c *Client) doFetchBalance(address string) (*Balance, error) {
	var resp balanceResponse
	if err := c.doGet("/v1/accounts/"+address+"/balance", &resp); err != nil {
		return nil, NewNetworkError("failed to get account balance", err)
	}

	amount, err := minorToDisplay(resp.Amount)
	if err != nil {
		return nil, NewNetworkError("malformed balance in gateway response", err)
	}

	return &Balance{
		Amount:      amount,
		Denom:       Denom,
		LastUpdated: time.Now(),
	}, nil
}

func (c *Client) RefreshBalance(address string) (*Balance, error) {
	c.cache.Invalidate(address)
	return c.GetBalance(address)
}

func (c *Client) GetCachedBalance(address string) (*Balance, bool) {
	return c.cache.Get(address)
}

func (c *Client) InvalidateCache(address string) {
	c.cache.Invalidate(address)
}

type coin struct {
	Amount string `json:"amount"`
	Denom  string `json:"denom"`
}

type simulateRequest struct {
	NodeID NodeID `json:"node_id"`
	Amount coin   `json:"amount"`
}

type simulateResponse struct {
	Fee coin `json:"fee"`
}

// SimulateDelegationFee dry-runs the delegation against the network and
// returns the estimated fee. The quote is only valid for the exact
// (nodeID, amount) pair supplied.
func (c *Client) SimulateDelegationFee(nodeID NodeID, amount decimal.Decimal) (*FeeQuote, error) {
	req := simulateRequest{
		NodeID: nodeID,
		Amount: coin{Amount: displayToMinor(amount), Denom: DenomMinor},
	}

	var resp simulateResponse
	if err := c.doPost("/v1/tx/delegate/simulate", req, &resp); err != nil {
		if httpErr, ok := err.(*httpStatusError); ok && httpErr.status == http.StatusBadRequest {
			return nil, NewSimulationRejectedError(httpErr.message, nil)
		}
		return nil, NewNetworkError("failed to simulate delegation fee", err)
	}

	fee, err := minorToDisplay(resp.Fee.Amount)
	if err != nil {
		return nil, NewNetworkError("malformed fee in gateway response", err)
	}

	return &FeeQuote{Amount: fee, Denom: Denom}, nil
}

type delegateRequest struct {
	Address string `json:"address"`
	NodeID  NodeID `json:"node_id"`
	Amount  coin   `json:"amount"`
	Fee     coin   `json:"fee"`
}

type delegateResponse struct {
	TxHash string `json:"tx_hash"`
}

// Delegate hands a validated, quoted request to the gateway for signing and
// broadcast. Confirmation tracking is the gateway's concern, not ours.
func (c *Client) Delegate(req DelegationRequest) (string, error) {
	body := delegateRequest{
		Address: req.Address,
		NodeID:  req.NodeID,
		Amount:  coin{Amount: displayToMinor(req.Amount), Denom: DenomMinor},
		Fee:     coin{Amount: displayToMinor(req.Fee.Amount), Denom: DenomMinor},
	}

	var resp delegateResponse
	if err := c.doPost("/v1/tx/delegate", body, &resp); err != nil {
		return "", NewMixnetError(ErrTransactionFailed, "failed to submit delegation", err)
	}

	c.cache.Invalidate(req.Address)

	return resp.TxHash, nil
}

func (c *Client) Close() error {
	c.cache.StopCleanupRoutine()
	c.httpClient.CloseIdleConnections()
	return nil
}

type httpStatusError struct {
	status  int
	message string
}

func (e *httpStatusError) Error() string {
	if e.message != "" {
		return fmt.Sprintf("gateway returned %d: %s", e.status, e.message)
	}
	return fmt.Sprintf("gateway returned %d", e.status)
}

type errorResponse struct {
	Message string `json:"message"`
}

func (c *Client) doGet(path string, out interface{}) error {
	resp, err := c.httpClient.Get(c.config.APIURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func (c *Client) doPost(path string, in, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Post(c.config.APIURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out interface{}) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		_ = json.Unmarshal(body, &errResp)
		return &httpStatusError{status: resp.StatusCode, message: errResp.Message}
	}

	return json.Unmarshal(body, out)
}

// displayToMinor renders a display-unit amount as an integer micro-unit string.
func displayToMinor(amount decimal.Decimal) string {
	return amount.Shift(DenomExponent).Truncate(0).String()
}

// minorToDisplay parses a micro-unit string into a display-unit amount.
func minorToDisplay(amount string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Shift(-DenomExponent), nil
}
