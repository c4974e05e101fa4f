package memory

import (
	"context"
	"sync"

	"github.com/dwikikusuma/food-storefront/internal/cart/app"
)

// Slots holds cart mirrors in process memory, one slot per session. Used
// when no Redis is configured and in tests.
type Slots struct {
	mu   sync.RWMutex
	data map[string][]byte
	fail error
}

func NewSlots() *Slots {
	return &Slots{data: make(map[string][]byte)}
}

// Slot returns the store for a single session.
func (s *Slots) Slot(sessionID string) app.Store {
	return &CartStore{slots: s, key: sessionID}
}

// FailWrites makes every Save and Delete return err until called with nil.
func (s *Slots) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

// Put writes raw bytes into a slot, bypassing the codec.
func (s *Slots) Put(sessionID string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = append([]byte(nil), data...)
}

func (s *Slots) Has(sessionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[sessionID]
	return ok
}

type CartStore struct {
	slots *Slots
	key   string
}

func (c *CartStore) Load(ctx context.Context) ([]byte, error) {
	c.slots.mu.RLock()
	defer c.slots.mu.RUnlock()

	data, ok := c.slots.data[c.key]
	if !ok {
		return nil, app.ErrSnapshotNotFound
	}
	return append([]byte(nil), data...), nil
}

func (c *CartStore) Save(ctx context.Context, data []byte) error {
	c.slots.mu.Lock()
	defer c.slots.mu.Unlock()

	if c.slots.fail != nil {
		return c.slots.fail
	}
	c.slots.data[c.key] = append([]byte(nil), data...)
	return nil
}

func (c *CartStore) Delete(ctx context.Context) error {
	c.slots.mu.Lock()
	defer c.slots.mu.Unlock()

	if c.slots.fail != nil {
		return c.slots.fail
	}
	delete(c.slots.data, c.key)
	return nil
}
