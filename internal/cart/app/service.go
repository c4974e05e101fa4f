package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/dwikikusuma/food-storefront/internal/cart/domain"
)

// Manager owns the authoritative cart of one session and keeps its durable
// mirror in sync. Operations are serialized, so a session has exactly one
// writer even when requests arrive concurrently.
type Manager struct {
	store Store
	log   *slog.Logger

	mu   sync.Mutex
	cart domain.Cart

	nextSub int
	subs    map[int]func(domain.Cart)
}

func NewManager(store Store, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		store: store,
		log:   log,
		subs:  make(map[int]func(domain.Cart)),
	}
}

// LoadFromStorage replaces the in-memory cart with the durable mirror. A
// missing or unreadable mirror yields an empty cart.
func (m *Manager) LoadFromStorage(ctx context.Context) domain.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cart = m.readMirror(ctx)
	m.notify()
	return m.cart.Clone()
}

func (m *Manager) readMirror(ctx context.Context) domain.Cart {
	data, err := m.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrSnapshotNotFound) {
			m.log.Warn("cart mirror read failed", slog.Any("err", err))
		}
		return domain.Cart{}
	}

	cart, err := DecodeSnapshot(data)
	if err != nil {
		m.log.Warn("cart mirror discarded", slog.Any("err", err))
		return domain.Cart{}
	}
	return cart
}

// AddOne puts one more unit of item in the cart. Out-of-stock items never
// enter the cart and an entry never grows past the stock it was added with.
// Items with a non-positive id or a negative price are refused too, since
// the mirror could not store them.
func (m *Manager) AddOne(ctx context.Context, item domain.MenuItem) domain.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, idx, ok := m.cart.Find(item.ID)
	switch {
	case !ok && !insertable(item):
		return m.cart.Clone()
	case !ok:
		next := m.cart.Clone()
		next.Entries = append(next.Entries, domain.CartEntry{
			MenuItem:         cloneItem(item),
			PurchaseQuantity: 1,
		})
		m.commit(ctx, next)
	case entry.PurchaseQuantity < entry.AvailableQuantity:
		next := m.cart.Clone()
		next.Entries[idx].PurchaseQuantity++
		m.commit(ctx, next)
	}
	return m.cart.Clone()
}

// RemoveOne takes one unit of item out of the cart, dropping the entry when
// its last unit goes.
func (m *Manager) RemoveOne(ctx context.Context, item domain.MenuItem) domain.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, idx, ok := m.cart.Find(item.ID)
	if !ok {
		return m.cart.Clone()
	}

	next := m.cart.Clone()
	if entry.PurchaseQuantity > 1 {
		next.Entries[idx].PurchaseQuantity--
	} else {
		next.Entries = append(next.Entries[:idx], next.Entries[idx+1:]...)
	}
	m.commit(ctx, next)
	return m.cart.Clone()
}

// Clear empties the cart and deletes its durable mirror.
func (m *Manager) Clear(ctx context.Context) domain.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cart = domain.Cart{}
	if err := m.store.Delete(ctx); err != nil {
		m.log.Warn("cart mirror delete failed", slog.Any("err", err))
	}
	m.notify()
	return domain.Cart{}
}

func (m *Manager) CurrentCart() domain.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.Clone()
}

// Reconcile merges freshly fetched catalog items into matching entries:
// display fields and stock come from the fresh item, the purchase quantity
// is kept and re-clamped to the new stock. Entries whose item is now out of
// stock are dropped. Entries without a fresh counterpart are left alone.
func (m *Manager) Reconcile(ctx context.Context, fresh []domain.MenuItem) domain.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(fresh) == 0 || m.cart.IsEmpty() {
		return m.cart.Clone()
	}

	byID := make(map[int64]domain.MenuItem, len(fresh))
	for _, it := range fresh {
		byID[it.ID] = it
	}

	next := domain.Cart{Entries: make([]domain.CartEntry, 0, len(m.cart.Entries))}
	for _, e := range m.cart.Entries {
		it, ok := byID[e.ID]
		if !ok {
			next.Entries = append(next.Entries, e)
			continue
		}
		qty := min(e.PurchaseQuantity, it.AvailableQuantity)
		if qty < 1 {
			continue
		}
		next.Entries = append(next.Entries, domain.CartEntry{
			MenuItem:         cloneItem(it),
			PurchaseQuantity: qty,
		})
	}

	if !next.Equal(m.cart) {
		m.commit(ctx, next)
	}
	return m.cart.Clone()
}

// Overlay annotates listed catalog items with the quantity already in the
// cart. It does not modify the cart.
func (m *Manager) Overlay(items []domain.MenuItem) []domain.ListedItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.ListedItem, 0, len(items))
	for _, it := range items {
		li := domain.ListedItem{MenuItem: it, SoldOut: it.AvailableQuantity < 1}
		if e, _, ok := m.cart.Find(it.ID); ok {
			li.InCart = e.PurchaseQuantity
			li.MaxedOut = e.PurchaseQuantity >= e.AvailableQuantity
		}
		out = append(out, li)
	}
	return out
}

// Subscribe registers fn to receive the cart after every change. fn runs
// with the manager locked and must not call back into it.
func (m *Manager) Subscribe(fn func(domain.Cart)) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// Subscribers reports how many subscriptions are active.
func (m *Manager) Subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

// commit installs next as the current cart and writes the mirror. A failed
// write is logged; the in-memory cart stays authoritative.
func (m *Manager) commit(ctx context.Context, next domain.Cart) {
	m.cart = next

	data, err := EncodeSnapshot(next)
	if err == nil {
		err = m.store.Save(ctx, data)
	}
	if err != nil {
		m.log.Warn("cart mirror write failed",
			slog.Any("err", err),
			slog.Int("entries", len(next.Entries)),
		)
	}
	m.notify()
}

func (m *Manager) notify() {
	for _, fn := range m.subs {
		fn(m.cart.Clone())
	}
}

// insertable reports whether item may start a new entry. Items the mirror
// could not round-trip are refused along with out-of-stock ones.
func insertable(item domain.MenuItem) bool {
	return item.ID > 0 && item.UnitPrice >= 0 && item.AvailableQuantity >= 1
}

func cloneItem(it domain.MenuItem) domain.MenuItem {
	if it.Images != nil {
		it.Images = append([]domain.Image(nil), it.Images...)
	}
	return it
}
