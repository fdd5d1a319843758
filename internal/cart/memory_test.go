package cart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet_CreatesEmptyCart(t *testing.T) {
	s := NewMemoryStore()
	c := s.Get(5)
	assert.NotNil(t, c)
	assert.Empty(t, c)
}

func TestAddOrUpdate_Accumulates(t *testing.T) {
	s := NewMemoryStore()
	s.AddOrUpdate(5, "F001", 2, "no onions")
	s.AddOrUpdate(5, "F001", 3, "extra spicy")

	c := s.Get(5)
	assert.Equal(t, 5, c["F001"].Quantity)
	assert.Equal(t, "extra spicy", c["F001"].ExtraDetail)
}

func TestAddOrUpdate_ZeroQuantityRemoves(t *testing.T) {
	s := NewMemoryStore()
	s.AddOrUpdate(5, "F001", 2, "")
	s.AddOrUpdate(5, "F001", 0, "")

	_, ok := s.Get(5)["F001"]
	assert.False(t, ok)

	// negative behaves the same
	s.AddOrUpdate(5, "F002", 1, "")
	s.AddOrUpdate(5, "F002", -1, "")
	_, ok = s.Get(5)["F002"]
	assert.False(t, ok)
}

func TestRemove_AbsentIsNoop(t *testing.T) {
	s := NewMemoryStore()
	s.Remove(5, "F001") // nothing to remove, must not panic

	s.AddOrUpdate(5, "F001", 1, "")
	s.Remove(5, "F001")
	assert.Empty(t, s.Get(5))
}

func TestClear_KeepsSeatKey(t *testing.T) {
	s := NewMemoryStore()
	s.AddOrUpdate(5, "F001", 2, "")
	s.Clear(5)

	s.mu.RLock()
	c, ok := s.carts[5]
	s.mu.RUnlock()
	assert.True(t, ok)
	assert.Empty(t, c)
}

func TestGet_ReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	s.AddOrUpdate(5, "F001", 2, "")

	c := s.Get(5)
	c["F001"] = Entry{Quantity: 99}
	assert.Equal(t, 2, s.Get(5)["F001"].Quantity)
}

func TestSet_ReplacesWholeCart(t *testing.T) {
	s := NewMemoryStore()
	s.AddOrUpdate(5, "F001", 2, "")
	s.Set(5, Cart{"F002": {Quantity: 1}})

	c := s.Get(5)
	assert.Len(t, c, 1)
	assert.Equal(t, 1, c["F002"].Quantity)
}

// Exercises concurrent readers and writers on one seat; fails under the
// race detector if Get reads the live map outside the lock.
func TestConcurrentGetAndAddOrUpdate(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				s.AddOrUpdate(5, "F001", 1, "")
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				_ = s.Get(5)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 2000, s.Get(5)["F001"].Quantity)
}

func TestSeatsArePartitioned(t *testing.T) {
	s := NewMemoryStore()
	s.AddOrUpdate(1, "F001", 1, "")
	s.AddOrUpdate(2, "F001", 7, "")

	assert.Equal(t, 1, s.Get(1)["F001"].Quantity)
	assert.Equal(t, 7, s.Get(2)["F001"].Quantity)
}
