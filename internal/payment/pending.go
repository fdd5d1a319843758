package payment

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// PendingCheckout is the reconciliation context saved when a checkout
// session is opened. Confirmation reads the breakdown from here instead of
// recomputing from live state, which may have changed while the customer was
// at the gateway.
type PendingCheckout struct {
	OrderID       string
	SeatNo        int
	SessionID     string
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	ServiceCharge decimal.Decimal
	GrandTotal    decimal.Decimal
	CreatedAt     time.Time
}

// PendingStore holds at most one pending checkout per seat. A new checkout
// for the same seat replaces the old entry, which is how an abandoned
// session gets retried.
type PendingStore struct {
	mu     sync.Mutex
	bySeat map[int]PendingCheckout
}

func NewPendingStore() *PendingStore {
	return &PendingStore{bySeat: make(map[int]PendingCheckout)}
}

func (s *PendingStore) Put(p PendingCheckout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bySeat[p.SeatNo] = p
}

func (s *PendingStore) Get(seatNo int) (PendingCheckout, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.bySeat[seatNo]
	return p, ok
}

func (s *PendingStore) Delete(seatNo int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bySeat, seatNo)
}
