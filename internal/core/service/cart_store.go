package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/renova/storefront/internal/core/domain"
	"github.com/renova/storefront/internal/core/ports"
)

// CartStore keeps the working cart in memory and mirrors each mutation to the
// backend through a SyncDispatcher. Local changes are applied first and never
// rolled back; the next Refresh reconciles with the server.
type CartStore struct {
	api      ports.CartAPI
	creds    ports.CredentialSource
	sync     ports.SyncDispatcher
	notifier ports.StockNotifier
	log      zerolog.Logger

	mu    sync.RWMutex
	items []domain.LineItem
}

var _ ports.CartService = (*CartStore)(nil)

// NewCartStore returns an empty cart. notifier may be nil.
func NewCartStore(
	api ports.CartAPI,
	creds ports.CredentialSource,
	dispatcher ports.SyncDispatcher,
	notifier ports.StockNotifier,
	log zerolog.Logger,
) *CartStore {
	return &CartStore{
		api:      api,
		creds:    creds,
		sync:     dispatcher,
		notifier: notifier,
		log:      log,
	}
}

// Refresh replaces the cart with the server snapshot. Without a credential the
// cart is emptied. Failures keep the current contents.
func (c *CartStore) Refresh(ctx context.Context) {
	cred := c.creds.Credential()
	if cred.Empty() {
		c.mu.Lock()
		c.items = nil
		c.mu.Unlock()
		return
	}

	items, err := c.api.FetchCart(ctx, cred)
	if err != nil {
		c.log.Warn().Err(err).Msg("cart refresh failed, keeping local cart")
		return
	}

	c.mu.Lock()
	// A logout while the fetch was in flight must not repopulate the cart.
	if c.creds.Credential() != cred {
		c.mu.Unlock()
		c.log.Debug().Msg("credential changed during refresh, discarding snapshot")
		return
	}
	c.items = items
	c.mu.Unlock()

	c.log.Debug().Int("items", len(items)).Msg("cart refreshed")
}

// Add puts quantity units of p in the cart, clamped to p.MaxQuantity.
func (c *CartStore) Add(ctx context.Context, p domain.Product, quantity int) *domain.StockNotice {
	return c.apply(func(items []domain.LineItem) domain.Transition {
		return domain.ApplyAdd(items, p, quantity)
	})
}

// UpdateQuantity sets the quantity of a line; <= 0 removes it.
func (c *CartStore) UpdateQuantity(ctx context.Context, productID string, quantity int) *domain.StockNotice {
	return c.apply(func(items []domain.LineItem) domain.Transition {
		return domain.ApplyUpdateQuantity(items, productID, quantity)
	})
}

// Remove drops the line for productID.
func (c *CartStore) Remove(ctx context.Context, productID string) {
	c.apply(func(items []domain.LineItem) domain.Transition {
		return domain.ApplyRemove(items, productID)
	})
}

// Clear empties the local cart. The remote cart is left alone.
func (c *CartStore) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

// Items returns a copy of the current lines.
func (c *CartStore) Items() []domain.LineItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total is recomputed on every call.
func (c *CartStore) Total() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return domain.Total(c.items)
}

// apply commits a pure transition and queues its commands in the same
// critical section, so per-product command order matches local order. Enqueue
// never blocks and the lock never covers network I/O.
func (c *CartStore) apply(transition func([]domain.LineItem) domain.Transition) *domain.StockNotice {
	cred := c.creds.Credential()

	c.mu.Lock()
	tr := transition(c.items)
	c.items = tr.Items
	if !cred.Empty() {
		for _, cmd := range tr.Sync {
			cmd.Credential = cred
			c.sync.Enqueue(cmd)
		}
	}
	c.mu.Unlock()

	if tr.Notice != nil && c.notifier != nil {
		c.notifier.NotifyStock(*tr.Notice)
	}
	return tr.Notice
}
