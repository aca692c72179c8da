package storefront

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Manager holds the visible cart and routes every action to the guest store
// or the server store depending on the session.
type Manager struct {
	session *Session
	guest   *guestStore
	server  *serverStore
	logger  *zap.Logger

	// op serializes mutations; mu guards the fields below it.
	op      sync.Mutex
	mu      sync.RWMutex
	cart    *Cart
	loading bool

	unsubscribe func()
}

func NewManager(session *Session, logger *zap.Logger) *Manager {
	if session == nil {
		panic("storefront: manager requires a session")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Manager{
		session: session,
		guest:   newGuestStore(session.storage),
		server:  newServerStore(session.client),
		logger:  logger.Named("storefront.cart"),
	}
	m.unsubscribe = session.Subscribe(m.onAuthChange)
	return m
}

// Close detaches the manager from the session.
func (m *Manager) Close() {
	m.unsubscribe()
}

func (m *Manager) store() Store {
	if m.session.Authenticated() {
		return m.server
	}
	return m.guest
}

func (m *Manager) setCart(c *Cart) {
	m.mu.Lock()
	m.cart = c
	m.mu.Unlock()
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

// Loading reports whether a cart request is in flight.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Cart returns a copy of the current cart, or nil.
func (m *Manager) Cart() *Cart {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cart == nil {
		return nil
	}
	c := *m.cart
	c.Items = append([]CartItem(nil), m.cart.Items...)
	if m.cart.Calculations != nil {
		calc := *m.cart.Calculations
		c.Calculations = &calc
	}
	return &c
}

func (m *Manager) CartCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cart == nil {
		return 0
	}
	n := 0
	for _, it := range m.cart.Items {
		n += it.Quantity
	}
	return n
}

func (m *Manager) CartTotal() decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cart == nil || m.cart.Calculations == nil {
		return decimal.Zero
	}
	return m.cart.Calculations.Total
}

func (m *Manager) run(action string, fn func(Store) (*Cart, error)) Result {
	m.op.Lock()
	defer m.op.Unlock()

	m.setLoading(true)
	defer m.setLoading(false)

	c, err := fn(m.store())
	if err != nil {
		m.logger.Debug("cart action failed", zap.String("action", action), zap.Error(err))
		return failed(UserMessage(err))
	}
	m.setCart(c)
	return ok()
}

// Refresh reloads the cart from whichever store is active.
func (m *Manager) Refresh(ctx context.Context) Result {
	return m.run("load", func(s Store) (*Cart, error) {
		return s.Load(ctx)
	})
}

func (m *Manager) AddItem(ctx context.Context, productID string, quantity int) Result {
	if quantity <= 0 {
		quantity = 1
	}
	return m.run("add", func(s Store) (*Cart, error) {
		return s.AddItem(ctx, productID, quantity)
	})
}

func (m *Manager) UpdateQuantity(ctx context.Context, productID string, quantity int) Result {
	if quantity < 1 {
		return failed(string(errInvalidQuantity))
	}
	return m.run("update", func(s Store) (*Cart, error) {
		return s.UpdateQuantity(ctx, productID, quantity)
	})
}

func (m *Manager) RemoveItem(ctx context.Context, productID string) Result {
	return m.run("remove", func(s Store) (*Cart, error) {
		return s.RemoveItem(ctx, productID)
	})
}

// ClearCart empties the active store and leaves no cart loaded.
func (m *Manager) ClearCart(ctx context.Context) Result {
	return m.run("clear", func(s Store) (*Cart, error) {
		return nil, s.Clear(ctx)
	})
}

func (m *Manager) ApplyCoupon(ctx context.Context, code string) Result {
	code = strings.TrimSpace(code)
	return m.run("apply_coupon", func(s Store) (*Cart, error) {
		return s.ApplyCoupon(ctx, code)
	})
}

func (m *Manager) RemoveCoupon(ctx context.Context) Result {
	return m.run("remove_coupon", func(s Store) (*Cart, error) {
		return s.RemoveCoupon(ctx)
	})
}

func (m *Manager) onAuthChange(ctx context.Context, ev AuthEvent) {
	if !ev.Authenticated {
		// may fire from inside a request that got a 401, so only the state
		// lock is taken here
		c, err := m.guest.Load(ctx)
		if err != nil {
			m.logger.Warn("load guest cart failed", zap.Error(err))
		}
		m.setCart(c)
		return
	}

	m.op.Lock()
	defer m.op.Unlock()
	m.setLoading(true)
	defer m.setLoading(false)

	if ev.Reason == ReasonLogin {
		if merged, ok := m.mergeGuestCart(ctx); ok {
			m.setCart(merged)
			return
		}
	}

	c, err := m.store().Load(ctx)
	if err != nil {
		m.logger.Warn("load cart after sign-in failed", zap.Error(err))
		return
	}
	m.setCart(c)
}

// mergeGuestCart pushes the guest cart into the server cart once. A failed merge
// keeps the guest cart and is not retried.
func (m *Manager) mergeGuestCart(ctx context.Context) (*Cart, bool) {
	lines, err := m.guest.lines()
	if err != nil {
		m.logger.Warn("read guest cart failed", zap.Error(err))
		return nil, false
	}
	if len(lines) == 0 {
		return nil, false
	}

	merged, err := m.session.client.mergeCart(ctx, lines)
	if err != nil {
		m.logger.Warn("guest cart merge failed",
			zap.Int("lines", len(lines)),
			zap.Error(err),
		)
		return nil, false
	}

	if err := m.guest.Clear(ctx); err != nil {
		m.logger.Warn("delete guest cart failed", zap.Error(err))
	}
	m.logger.Info("guest cart merged", zap.Int("lines", len(lines)))
	return merged, true
}
