package orderstatus

import "sync"

// Registry keeps one Controller per session so each browser sees the order
// state its own requests confirmed.
type Registry struct {
	svc      OrderService
	notifier func(sessionID string) NotifyFunc

	mu          sync.Mutex
	controllers map[string]*Controller
}

// NewRegistry builds controllers on demand. notifier may be nil.
func NewRegistry(svc OrderService, notifier func(sessionID string) NotifyFunc) *Registry {
	return &Registry{
		svc:         svc,
		notifier:    notifier,
		controllers: make(map[string]*Controller),
	}
}

func (r *Registry) For(sessionID string) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.controllers[sessionID]
	if !ok {
		var notify NotifyFunc
		if r.notifier != nil {
			notify = r.notifier(sessionID)
		}
		c = NewController(r.svc, notify)
		r.controllers[sessionID] = c
	}
	return c
}

// Discard forgets the session's view state, on logout.
func (r *Registry) Discard(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.controllers, sessionID)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.controllers)
}
