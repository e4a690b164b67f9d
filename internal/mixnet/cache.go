package mixnet

import (
	"time"
)

func NewBalanceCache(ttl time.Duration) *BalanceCache {
	return &BalanceCache{
		balances: make(map[string]*Balance),
		ttl:      ttl,
	}
}

func (c *BalanceCache) Get(address string) (*Balance, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	balance, exists := c.balances[address]
	if !exists {
		return nil, false
	}

	if time.Since(balance.LastUpdated) > c.ttl {
		return nil, false
	}

	copied := *balance
	return &copied, true
}

func (c *BalanceCache) Set(address string, balance *Balance) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.balances[address] = &Balance{
		Amount:      balance.Amount,
		Denom:       balance.Denom,
		LastUpdated: time.Now(),
	}
}

func (c *BalanceCache) Invalidate(address string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.balances, address)
}

func (c *BalanceCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.balances = make(map[string]*Balance)
}

func (c *BalanceCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for address, balance := range c.balances {
		if now.Sub(balance.LastUpdated) > c.ttl {
			delete(c.balances, address)
		}
	}
}

func (c *BalanceCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.balances)
}

func (c *BalanceCache) StartCleanupRoutine(interval time.Duration) {
	c.mu.Lock()
	if c.stop != nil {
		c.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	c.stop = stop
	c.mu.Unlock()

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.Cleanup()
			case <-stop:
				return
			}
		}
	}()
}

// StopCleanupRoutine stops the background cleanup goroutine. Safe to call
// multiple times or without a prior start.
func (c *BalanceCache) StopCleanupRoutine() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}
