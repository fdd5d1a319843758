package order

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaer6289/Food-Ordering-System/internal/cart"
	"github.com/xiaer6289/Food-Ordering-System/internal/catalog"
)

//
// ---------- STUBS & FAKES ----------
//

// stubRepo keeps one order in memory and mimics the transactional methods.
type stubRepo struct {
	lastOrder  *OrderDetail
	lastItems  []Item
	seatExists bool
	seatStatus string
}

func (s *stubRepo) Create(ctx context.Context, o *OrderDetail, items []Item) error {
	cp := *o
	s.lastOrder = &cp
	s.lastItems = append([]Item(nil), items...)
	return nil
}

func (s *stubRepo) GetByID(ctx context.Context, id string) (*OrderDetail, []Item, error) {
	if s.lastOrder == nil || s.lastOrder.ID != id {
		return nil, nil, ErrNotFound
	}
	o := *s.lastOrder
	return &o, append([]Item(nil), s.lastItems...), nil
}

func (s *stubRepo) List(ctx context.Context, q Query) ([]OrderDetail, error) {
	if s.lastOrder == nil {
		return nil, nil
	}
	return []OrderDetail{*s.lastOrder}, nil
}

func (s *stubRepo) FirstUnpaidBySeat(ctx context.Context, seatNo int) (*OrderDetail, error) {
	if s.lastOrder == nil || s.lastOrder.SeatNo != seatNo ||
		(s.lastOrder.Status != StatusPending && s.lastOrder.Status != StatusPreparing) {
		return nil, ErrNotFound
	}
	o := *s.lastOrder
	return &o, nil
}

func (s *stubRepo) MarkSent(ctx context.Context, orderID string, seatNo int) (bool, error) {
	if s.lastOrder == nil || s.lastOrder.ID != orderID {
		return false, ErrNotFound
	}
	s.lastOrder.Status = StatusPreparing
	if s.seatExists {
		s.seatStatus = "Occupied"
	}
	return s.seatExists, nil
}

func (s *stubRepo) ConfirmPayment(ctx context.Context, p *Payment, orderID string, seatNo int) error {
	if s.lastOrder == nil || s.lastOrder.ID != orderID {
		return ErrNotFound
	}
	s.lastOrder.Status = StatusPaid
	s.seatStatus = "Available"
	return nil
}

func (s *stubRepo) RefundItems(ctx context.Context, orderID string, itemIDs []string) error {
	if s.lastOrder == nil || s.lastOrder.ID != orderID {
		return ErrNotFound
	}
	selected := map[string]bool{}
	for _, id := range itemIDs {
		selected[id] = true
	}
	total := decimal.Zero
	allZero := true
	for i, it := range s.lastItems {
		if selected[it.ID] {
			s.lastItems[i].SubTotal = "0.00"
		}
		sub := decimal.RequireFromString(s.lastItems[i].SubTotal)
		total = total.Add(sub)
		if sub.Sign() > 0 {
			allZero = false
		}
	}
	s.lastOrder.TotalPrice = total.StringFixed(2)
	if allZero {
		s.lastOrder.Status = StatusRefunded
	} else {
		s.lastOrder.Status = StatusPartiallyRefunded
	}
	return nil
}

func (s *stubRepo) GetPayment(ctx context.Context, orderID string) (*Payment, error) {
	return nil, ErrNotFound
}

// stubCatalog serves foods from a map.
type stubCatalog struct{ foods map[string]catalog.Food }

func (s *stubCatalog) GetByID(ctx context.Context, id string) (*catalog.Food, error) {
	f, ok := s.foods[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &f, nil
}

func (s *stubCatalog) List(ctx context.Context, q catalog.Query) ([]catalog.Food, error) {
	var out []catalog.Food
	for _, f := range s.foods {
		out = append(out, f)
	}
	return out, nil
}

type fakePublisher struct{ events []SentEvent }

func (f *fakePublisher) PublishOrderSent(ctx context.Context, evt SentEvent) error {
	f.events = append(f.events, evt)
	return nil
}

func testCatalog() *stubCatalog {
	return &stubCatalog{foods: map[string]catalog.Food{
		"F001": {ID: "F001", Name: "Nasi Lemak", Price: "10.00"},
		"F002": {ID: "F002", Name: "Teh Tarik", Price: "5.00"},
	}}
}

//
// ---------- TESTS ----------
//

func TestCreateOrder_TotalsAndQuantity(t *testing.T) {
	repo := &stubRepo{seatExists: true}
	carts := cart.NewMemoryStore()
	carts.AddOrUpdate(5, "F001", 2, "less sugar")
	carts.AddOrUpdate(5, "F002", 1, "")
	svc := NewService(repo, testCatalog(), carts, nil)

	o, items, err := svc.CreateOrder(context.Background(), 5, "S001", "")
	require.NoError(t, err)

	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, 3, o.Quantity)
	assert.Equal(t, "25.00", o.TotalPrice)
	require.NotNil(t, o.StaffID)
	assert.Equal(t, "S001", *o.StaffID)
	assert.Nil(t, o.AdminID)

	require.Len(t, items, 2)
	assert.Equal(t, o.ID+"-1", items[0].ID)
	assert.Equal(t, o.ID+"-2", items[1].ID)
	assert.Equal(t, "20.00", items[0].SubTotal)
	assert.Equal(t, "less sugar", items[0].ExtraDetail)
	assert.Equal(t, "5.00", items[1].SubTotal)

	// persisted
	require.NotNil(t, repo.lastOrder)
	assert.Equal(t, o.ID, repo.lastOrder.ID)

	// cart untouched, seat untouched
	assert.Len(t, carts.Get(5), 2)
	assert.Empty(t, repo.seatStatus)
}

// Orders past ten lines must keep a numeric item sequence: item 10 comes
// after item 9, not after item 1.
func TestCreateOrder_ItemSequencePastTen(t *testing.T) {
	foods := map[string]catalog.Food{}
	carts := cart.NewMemoryStore()
	for i := 1; i <= 11; i++ {
		id := fmt.Sprintf("F%03d", i)
		foods[id] = catalog.Food{ID: id, Name: id, Price: "1.00"}
		carts.AddOrUpdate(5, id, 1, "")
	}
	svc := NewService(&stubRepo{}, &stubCatalog{foods: foods}, carts, nil)

	o, items, err := svc.CreateOrder(context.Background(), 5, "S001", "")
	require.NoError(t, err)
	require.Len(t, items, 11)
	for i, it := range items {
		assert.Equal(t, fmt.Sprintf("%s-%d", o.ID, i+1), it.ID)
	}
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, testCatalog(), cart.NewMemoryStore(), nil)

	_, _, err := svc.CreateOrder(context.Background(), 5, "S001", "")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, repo.lastOrder, "nothing may be persisted")
}

func TestCreateOrder_UnknownFoodSkipped(t *testing.T) {
	repo := &stubRepo{}
	carts := cart.NewMemoryStore()
	carts.AddOrUpdate(5, "F001", 1, "")
	carts.AddOrUpdate(5, "XXXX", 4, "")
	svc := NewService(repo, testCatalog(), carts, nil)

	o, items, err := svc.CreateOrder(context.Background(), 5, "S001", "")
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, o.Quantity)
	assert.Equal(t, "10.00", o.TotalPrice)
}

func TestCreateOrder_OnlyUnknownFoods(t *testing.T) {
	repo := &stubRepo{}
	carts := cart.NewMemoryStore()
	carts.AddOrUpdate(5, "XXXX", 1, "")
	svc := NewService(repo, testCatalog(), carts, nil)

	_, _, err := svc.CreateOrder(context.Background(), 5, "S001", "")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, repo.lastOrder)
}

func TestCreateOrder_ExactlyOneActor(t *testing.T) {
	carts := cart.NewMemoryStore()
	carts.AddOrUpdate(5, "F001", 1, "")
	svc := NewService(&stubRepo{}, testCatalog(), carts, nil)

	_, _, err := svc.CreateOrder(context.Background(), 5, "", "")
	assert.Error(t, err)

	_, _, err = svc.CreateOrder(context.Background(), 5, "S001", "A00001")
	assert.Error(t, err)
}

func TestSendToKitchen_TransitionsAndClearsCart(t *testing.T) {
	repo := &stubRepo{seatExists: true}
	carts := cart.NewMemoryStore()
	carts.AddOrUpdate(5, "F001", 2, "")
	pub := &fakePublisher{}
	svc := NewService(repo, testCatalog(), carts, pub)

	o, _, err := svc.SendToKitchen(context.Background(), 5, "S001", "")
	require.NoError(t, err)

	assert.Equal(t, StatusPreparing, o.Status)
	assert.Equal(t, StatusPreparing, repo.lastOrder.Status)
	assert.Equal(t, "Occupied", repo.seatStatus)
	assert.Empty(t, carts.Get(5))

	require.Len(t, pub.events, 1)
	assert.Equal(t, o.ID, pub.events[0].OrderID)
	assert.Equal(t, 5, pub.events[0].SeatNo)
}

func TestSendToKitchen_MissingSeatStillSends(t *testing.T) {
	repo := &stubRepo{seatExists: false}
	carts := cart.NewMemoryStore()
	carts.AddOrUpdate(9, "F001", 1, "")
	svc := NewService(repo, testCatalog(), carts, nil)

	o, _, err := svc.SendToKitchen(context.Background(), 9, "S001", "")
	require.NoError(t, err)
	assert.Equal(t, StatusPreparing, o.Status)
	assert.Empty(t, repo.seatStatus)
	assert.Empty(t, carts.Get(9))
}

func refundFixture(t *testing.T) (*Service, *stubRepo, string, []Item) {
	t.Helper()
	repo := &stubRepo{seatExists: true}
	carts := cart.NewMemoryStore()
	carts.AddOrUpdate(5, "F001", 1, "")
	carts.AddOrUpdate(5, "F002", 3, "")
	svc := NewService(repo, testCatalog(), carts, nil)

	o, items, err := svc.CreateOrder(context.Background(), 5, "S001", "")
	require.NoError(t, err)
	repo.lastOrder.Status = StatusPaid
	return svc, repo, o.ID, items
}

func TestRefund_Partial(t *testing.T) {
	svc, _, orderID, items := refundFixture(t)

	// refund the 10.00 item; 15.00 remains
	o, after, err := svc.Refund(context.Background(), orderID, []string{items[0].ID})
	require.NoError(t, err)
	assert.Equal(t, StatusPartiallyRefunded, o.Status)
	assert.Equal(t, "15.00", o.TotalPrice)
	assert.Equal(t, "0.00", after[0].SubTotal)
	assert.Equal(t, "15.00", after[1].SubTotal)
}

func TestRefund_Full(t *testing.T) {
	svc, _, orderID, items := refundFixture(t)

	o, _, err := svc.Refund(context.Background(), orderID, []string{items[0].ID, items[1].ID})
	require.NoError(t, err)
	assert.Equal(t, StatusRefunded, o.Status)
	assert.Equal(t, "0.00", o.TotalPrice)
}

func TestRefund_Idempotent(t *testing.T) {
	svc, _, orderID, items := refundFixture(t)

	first, _, err := svc.Refund(context.Background(), orderID, []string{items[0].ID})
	require.NoError(t, err)
	second, _, err := svc.Refund(context.Background(), orderID, []string{items[0].ID})
	require.NoError(t, err)

	assert.Equal(t, first.TotalPrice, second.TotalPrice)
	assert.Equal(t, first.Status, second.Status)
}

func TestRefund_NoItemsSelected(t *testing.T) {
	svc, _, orderID, _ := refundFixture(t)

	_, _, err := svc.Refund(context.Background(), orderID, nil)
	assert.ErrorIs(t, err, ErrNoItemsSelected)
}

func TestRefund_OrderNotFound(t *testing.T) {
	svc := NewService(&stubRepo{}, testCatalog(), cart.NewMemoryStore(), nil)

	_, _, err := svc.Refund(context.Background(), "OD000", []string{"OD000-1"})
	assert.ErrorIs(t, err, ErrNotFound)
}
