package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xiaer6289/Food-Ordering-System/internal/cart"
	"github.com/xiaer6289/Food-Ordering-System/internal/catalog"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrNoItemsSelected = errors.New("no items selected for refund")
	ErrActorRequired   = errors.New("exactly one of staff_id or admin_id must be set")
)

// SentEvent is what the kitchen sees when an order is sent.
type SentEvent struct {
	OrderID    string    `json:"order_id"`
	SeatNo     int       `json:"seat_no"`
	Quantity   int       `json:"quantity"`
	TotalPrice string    `json:"total_price"`
	Items      []Item    `json:"items"`
	SentAt     time.Time `json:"sent_at"`
}

// Publisher delivers sent orders to the kitchen. A nil Publisher disables
// publishing.
type Publisher interface {
	PublishOrderSent(ctx context.Context, evt SentEvent) error
}

type Service struct {
	repo    Repository
	foods   catalog.Repository
	carts   cart.Store
	kitchen Publisher
}

func NewService(repo Repository, foods catalog.Repository, carts cart.Store, kitchen Publisher) *Service {
	return &Service{repo: repo, foods: foods, carts: carts, kitchen: kitchen}
}

// CreateOrder materializes the seat's cart into a persisted OrderDetail plus
// its items. Prices are looked up from the catalog at assembly time, never
// taken from the cart. The cart and the seat are left untouched; the caller
// decides when to clear and occupy.
func (s *Service) CreateOrder(ctx context.Context, seatNo int, staffID, adminID string) (*OrderDetail, []Item, error) {
	if (staffID == "") == (adminID == "") {
		return nil, nil, ErrActorRequired
	}

	c := s.carts.Get(seatNo)
	if len(c) == 0 {
		return nil, nil, ErrEmptyCart
	}

	now := time.Now()
	id := newOrderID(now)

	foodIDs := make([]string, 0, len(c))
	for fid := range c {
		foodIDs = append(foodIDs, fid)
	}
	sort.Strings(foodIDs)

	var (
		items    []Item
		total    = decimal.Zero
		quantity int
	)
	for _, fid := range foodIDs {
		entry := c[fid]
		f, err := s.foods.GetByID(ctx, fid)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				// cart entries are validated at insertion; a vanished food
				// is skipped rather than failing the whole order
				log.Printf("[order] skipping unknown food %s in cart for seat %d", fid, seatNo)
				continue
			}
			return nil, nil, err
		}
		price, err := decimal.NewFromString(f.Price)
		if err != nil {
			return nil, nil, fmt.Errorf("bad price for food %s: %w", fid, err)
		}
		sub := price.Mul(decimal.NewFromInt(int64(entry.Quantity))).Round(2)
		items = append(items, Item{
			ID:            fmt.Sprintf("%s-%d", id, len(items)+1),
			OrderDetailID: id,
			FoodID:        fid,
			FoodName:      f.Name,
			Quantity:      entry.Quantity,
			SubTotal:      sub.StringFixed(2),
			ExtraDetail:   entry.ExtraDetail,
		})
		total = total.Add(sub)
		quantity += entry.Quantity
	}
	if len(items) == 0 {
		return nil, nil, ErrEmptyCart
	}

	o := &OrderDetail{
		ID:         id,
		SeatNo:     seatNo,
		Quantity:   quantity,
		Status:     StatusPending,
		TotalPrice: total.StringFixed(2),
		OrderDate:  now,
	}
	if staffID != "" {
		o.StaffID = &staffID
	} else {
		o.AdminID = &adminID
	}

	if err := s.repo.Create(ctx, o, items); err != nil {
		return nil, nil, err
	}
	return o, items, nil
}

// SendToKitchen assembles the cart and hands the order to the kitchen: the
// order becomes Preparing, the seat Occupied, the cart is cleared. The
// kitchen event goes out after the commit; a broker failure is logged, not
// returned.
func (s *Service) SendToKitchen(ctx context.Context, seatNo int, staffID, adminID string) (*OrderDetail, []Item, error) {
	o, items, err := s.CreateOrder(ctx, seatNo, staffID, adminID)
	if err != nil {
		return nil, nil, err
	}

	seatUpdated, err := s.repo.MarkSent(ctx, o.ID, seatNo)
	if err != nil {
		return nil, nil, err
	}
	if !seatUpdated {
		log.Printf("[order] seat %d not found, order %s sent without seat update", seatNo, o.ID)
	}
	o.Status = StatusPreparing
	s.carts.Clear(seatNo)

	if s.kitchen != nil {
		evt := SentEvent{
			OrderID:    o.ID,
			SeatNo:     seatNo,
			Quantity:   o.Quantity,
			TotalPrice: o.TotalPrice,
			Items:      items,
			SentAt:     time.Now(),
		}
		if err := s.kitchen.PublishOrderSent(ctx, evt); err != nil {
			log.Printf("[order] kitchen publish failed for %s: %v", o.ID, err)
		}
	}
	return o, items, nil
}

// Refund zeroes the selected items' subtotals on a paid order and recomputes
// the total. Items stay on the order so the audit trail of what was ordered
// survives. Refunding an already-zeroed item again is a no-op.
func (s *Service) Refund(ctx context.Context, orderID string, itemIDs []string) (*OrderDetail, []Item, error) {
	if len(itemIDs) == 0 {
		return nil, nil, ErrNoItemsSelected
	}
	if _, _, err := s.repo.GetByID(ctx, orderID); err != nil {
		return nil, nil, err
	}
	if err := s.repo.RefundItems(ctx, orderID, itemIDs); err != nil {
		return nil, nil, err
	}
	return s.repo.GetByID(ctx, orderID)
}

func newOrderID(t time.Time) string {
	return "OD" + t.Format("20060102150405") + strings.ToUpper(uuid.NewString()[:6])
}
