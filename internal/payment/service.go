package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xiaer6289/Food-Ordering-System/internal/cart"
	"github.com/xiaer6289/Food-Ordering-System/internal/order"
)

var (
	ErrNoPendingOrder      = errors.New("no pending order to pay")
	ErrPaymentNotCompleted = errors.New("payment not completed")
)

// ReconciliationError means the gateway captured the money but the local
// payment record could not be persisted. This is the one failure that must
// never be swallowed: state and money disagree until someone retries or
// inspects it.
type ReconciliationError struct {
	SessionID     string
	TransactionID string
	OrderID       string
	Err           error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("payment reconciliation failed for order %s (session %s, tx %s): %v",
		e.OrderID, e.SessionID, e.TransactionID, e.Err)
}

func (e *ReconciliationError) Unwrap() error { return e.Err }

var (
	taxRate     = decimal.NewFromFloat(0.06)
	serviceRate = decimal.NewFromFloat(0.10)
	hundred     = decimal.NewFromInt(100)
)

// Confirmation is the view-model returned after a successful payment.
type Confirmation struct {
	Order   *order.OrderDetail `json:"order"`
	Items   []order.Item       `json:"items"`
	Payment *order.Payment     `json:"payment"`
}

type Service struct {
	orders  order.Repository
	carts   cart.Store
	gateway Gateway
	pending *PendingStore

	baseURL  string
	currency string
}

func NewService(orders order.Repository, carts cart.Store, gateway Gateway, pending *PendingStore, baseURL, currency string) *Service {
	return &Service{
		orders:   orders,
		carts:    carts,
		gateway:  gateway,
		pending:  pending,
		baseURL:  strings.TrimRight(baseURL, "/"),
		currency: currency,
	}
}

// CreateCheckoutSession computes the payable amount for the seat's oldest
// unpaid order, opens a hosted session at the gateway and returns the
// redirect URL. The breakdown is stashed per seat so Confirm never
// recomputes from mutable state.
func (s *Service) CreateCheckoutSession(ctx context.Context, seatNo int) (string, error) {
	o, err := s.orders.FirstUnpaidBySeat(ctx, seatNo)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			return "", ErrNoPendingOrder
		}
		return "", err
	}

	subtotal, err := decimal.NewFromString(o.TotalPrice)
	if err != nil {
		return "", fmt.Errorf("bad order total for %s: %w", o.ID, err)
	}
	tax := subtotal.Mul(taxRate).Round(2)
	serviceCharge := subtotal.Mul(serviceRate).Round(2)
	grandTotal := subtotal.Add(tax).Add(serviceCharge)

	// grandTotal carries at most 2dp here, so this is exact
	amountMinor := grandTotal.Mul(hundred).IntPart()

	sess, err := s.gateway.CreateSession(ctx, CreateSessionParams{
		AmountMinor: amountMinor,
		Currency:    s.currency,
		Name:        "Restaurant Order",
		Description: fmt.Sprintf("Seat No: %d, Order ID: %s", seatNo, o.ID),
		SuccessURL:  fmt.Sprintf("%s/payment/success?seatNo=%d&session_id={CHECKOUT_SESSION_ID}", s.baseURL, seatNo),
		CancelURL:   s.baseURL + "/payment/cancel",
	})
	if err != nil {
		return "", err
	}

	s.pending.Put(PendingCheckout{
		OrderID:       o.ID,
		SeatNo:        seatNo,
		SessionID:     sess.ID,
		Subtotal:      subtotal,
		Tax:           tax,
		ServiceCharge: serviceCharge,
		GrandTotal:    grandTotal,
		CreatedAt:     time.Now(),
	})
	log.Printf("[payment] checkout session %s opened for order %s seat %d amount=%s %s",
		sess.ID, o.ID, seatNo, grandTotal.StringFixed(2), s.currency)
	return sess.URL, nil
}

// Confirm verifies the gateway session is paid, records the payment and
// transitions order and seat in one transaction. A non-paid status is a
// cancellation outcome with zero mutation. A gateway transport error is
// returned as-is so the caller can retry; it is never read as "not paid".
func (s *Service) Confirm(ctx context.Context, seatNo int, sessionID string) (*Confirmation, error) {
	sess, err := s.gateway.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.PaymentStatus != "paid" {
		return nil, ErrPaymentNotCompleted
	}

	pc, ok := s.pending.Get(seatNo)
	if !ok || pc.SessionID != sessionID {
		return nil, order.ErrNotFound
	}
	o, items, err := s.orders.GetByID(ctx, pc.OrderID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	amountPaid := decimal.New(sess.AmountTotal, -2)
	p := &order.Payment{
		ID:                   newPaymentID(now),
		OrderDetailID:        o.ID,
		Method:               "card",
		Subtotal:             pc.Subtotal.StringFixed(2),
		Tax:                  pc.Tax.StringFixed(2),
		ServiceCharge:        pc.ServiceCharge.StringFixed(2),
		TotalPrice:           pc.GrandTotal.StringFixed(2),
		AmountPaid:           amountPaid.StringFixed(2),
		PaymentDate:          now,
		GatewayTransactionID: sess.PaymentIntentID,
	}

	if err := s.orders.ConfirmPayment(ctx, p, o.ID, seatNo); err != nil {
		rerr := &ReconciliationError{
			SessionID:     sessionID,
			TransactionID: sess.PaymentIntentID,
			OrderID:       o.ID,
			Err:           err,
		}
		log.Printf("[payment] ALERT %v", rerr)
		return nil, rerr
	}

	s.pending.Delete(seatNo)
	s.carts.Clear(seatNo)
	o.Status = order.StatusPaid

	log.Printf("[payment] order %s paid, seat %d freed, tx=%s", o.ID, seatNo, sess.PaymentIntentID)
	return &Confirmation{Order: o, Items: items, Payment: p}, nil
}

func newPaymentID(t time.Time) string {
	return "P" + t.Format("20060102150405") + strings.ToUpper(uuid.NewString()[:6])
}
