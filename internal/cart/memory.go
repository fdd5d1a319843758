package cart

import "sync"

// MemoryStore keeps carts in process memory behind a mutex.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[int]Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[int]Cart)}
}

func (s *MemoryStore) Get(seatNo int) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[seatNo]
	if !ok {
		c = Cart{}
		s.carts[seatNo] = c
	}
	// copy inside the lock so a concurrent AddOrUpdate cannot touch c mid-read
	return copyCart(c)
}

func (s *MemoryStore) Set(seatNo int, c Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[seatNo] = copyCart(c)
}

// AddOrUpdate accumulates: adding the same food twice stacks the quantities
// and overwrites the note. A non-positive quantity removes the entry.
func (s *MemoryStore) AddOrUpdate(seatNo int, foodID string, quantity int, extraDetail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[seatNo]
	if !ok {
		c = Cart{}
		s.carts[seatNo] = c
	}
	if quantity <= 0 {
		delete(c, foodID)
		return
	}
	e := c[foodID]
	e.Quantity += quantity
	e.ExtraDetail = extraDetail
	c[foodID] = e
}

func (s *MemoryStore) Remove(seatNo int, foodID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[seatNo]; ok {
		delete(c, foodID)
	}
}

// Clear resets the seat's cart to an empty mapping; the seat key stays.
func (s *MemoryStore) Clear(seatNo int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[seatNo] = Cart{}
}

func copyCart(c Cart) Cart {
	out := make(Cart, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
