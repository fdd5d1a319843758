// Package cart holds the per-seat selections a customer is building before
// the order is sent to the kitchen or paid. Carts are session-scoped state:
// one staff terminal operates a given seat at a time, so the store only
// guarantees whole-cart writes, not cross-request ordering.
package cart

// Entry is one selected food line in a cart.
type Entry struct {
	Quantity    int    `json:"quantity"`
	ExtraDetail string `json:"extra_detail"`
}

// Cart maps food id to the selected quantity and note.
type Cart map[string]Entry

// Store is a keyed cart store. Get never fails: an absent seat yields an
// empty cart.
type Store interface {
	Get(seatNo int) Cart
	Set(seatNo int, c Cart)
	AddOrUpdate(seatNo int, foodID string, quantity int, extraDetail string)
	Remove(seatNo int, foodID string)
	Clear(seatNo int)
}
