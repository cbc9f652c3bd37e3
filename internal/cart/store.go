package cart

import "sync"

// Store hands out the cart owned by each session. Carts live in process
// memory for the lifetime of the session; there is no cross-process
// sharing and no eviction beyond process restart.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewStore() *Store {
	return &Store{carts: map[string]*Cart{}}
}

// Get returns the session's cart, creating it on first use.
func (s *Store) Get(sessionID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[sessionID]
	if !ok {
		c = &Cart{}
		s.carts[sessionID] = c
	}
	return c
}
