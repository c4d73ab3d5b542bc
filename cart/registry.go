package cart

import "sync"

type key struct {
	sessionID string
	stallID   int
}

// Registry keeps one cart per session and stall for as long as the session
// lives. Carts are view state and are never persisted.
type Registry struct {
	mu    sync.Mutex
	carts map[key]*Cart
}

func NewRegistry() *Registry {
	return &Registry{carts: make(map[key]*Cart)}
}

// Get returns the cart for the session and stall, creating an empty one.
func (r *Registry) Get(sessionID string, stallID int) *Cart {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key{sessionID, stallID}
	c, ok := r.carts[k]
	if !ok {
		c = New(stallID)
		r.carts[k] = c
	}
	return c
}

// Discard drops the cart for one stall.
func (r *Registry) Discard(sessionID string, stallID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, key{sessionID, stallID})
}

// DiscardSession drops every cart the session holds, on logout.
func (r *Registry) DiscardSession(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.carts {
		if k.sessionID == sessionID {
			delete(r.carts, k)
		}
	}
}

// Len counts the carts held across all sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.carts)
}
