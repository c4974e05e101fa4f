// Package session keeps one cart manager and one signed-in user per browser
// session. Only the cart outlives the process, through its durable mirror.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	authdomain "github.com/dwikikusuma/food-storefront/internal/auth/domain"
	cartapp "github.com/dwikikusuma/food-storefront/internal/cart/app"
)

type StoreFactory func(sessionID string) cartapp.Store

type Session struct {
	ID   string
	Cart *cartapp.Manager

	loadOnce sync.Once

	mu       sync.RWMutex
	user     *authdomain.User
	token    string
	lastSeen time.Time
}

func (s *Session) SignIn(login authdomain.Login) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := login.User
	s.user = &u
	s.token = login.Token
}

// SetUser replaces the signed-in user's profile, keeping the token.
func (s *Session) SetUser(u authdomain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user != nil {
		s.user = &u
	}
}

// User returns the signed-in user and API token, if any.
func (s *Session) User() (authdomain.User, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return authdomain.User{}, "", false
	}
	return *s.user, s.token, true
}

func (s *Session) signOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) idleSince() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSeen
}

type Registry struct {
	stores  StoreFactory
	idleTTL time.Duration
	log     *slog.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(stores StoreFactory, idleTTL time.Duration, log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		stores:   stores,
		idleTTL:  idleTTL,
		log:      log,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for id, creating it and rehydrating its cart from
// the durable mirror on first use.
func (r *Registry) Get(ctx context.Context, id string) *Session {
	now := r.now()

	r.mu.Lock()
	s, ok := r.sessions[id]
	if !ok {
		s = &Session{
			ID:   id,
			Cart: cartapp.NewManager(r.stores(id), r.log.With(slog.String("session", id))),
		}
		r.sessions[id] = s
	}
	// touched under r.mu so a concurrent Sweep cannot evict it in between
	s.touch(now)
	r.mu.Unlock()

	s.loadOnce.Do(func() {
		cart := s.Cart.LoadFromStorage(ctx)
		r.log.Debug("session opened",
			slog.String("session", id),
			slog.Int("cart_entries", len(cart.Entries)),
		)
	})
	return s
}

// Logout signs the user out and clears the session's cart.
func (r *Registry) Logout(ctx context.Context, id string) {
	s := r.Get(ctx, id)
	s.signOut()
	s.Cart.Clear(ctx)
}

// Sweep drops sessions idle for longer than the registry's TTL. Sessions whose
// cart still has subscribers, such as an open event stream, are kept. Mirrors
// of dropped sessions stay in the store and are reloaded on the next request.
func (r *Registry) Sweep(now time.Time) int {
	if r.idleTTL <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, s := range r.sessions {
		if now.Sub(s.idleSince()) > r.idleTTL && s.Cart.Subscribers() == 0 {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps on every tick until ctx is done.
func (r *Registry) Run(ctx context.Context, every time.Duration) error {
	if every <= 0 {
		every = time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-t.C:
			if n := r.Sweep(now); n > 0 {
				r.log.Info("idle sessions evicted", slog.Int("count", n))
			}
		}
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
