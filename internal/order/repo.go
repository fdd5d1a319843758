package order

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("order not found")
)

type Query struct {
	SeatNo *int
	Status string
	Limit  int
	Offset int
}

type Repository interface {
	Create(ctx context.Context, o *OrderDetail, items []Item) error
	GetByID(ctx context.Context, id string) (*OrderDetail, []Item, error)
	List(ctx context.Context, q Query) ([]OrderDetail, error)
	FirstUnpaidBySeat(ctx context.Context, seatNo int) (*OrderDetail, error)
	MarkSent(ctx context.Context, orderID string, seatNo int) (bool, error)
	ConfirmPayment(ctx context.Context, p *Payment, orderID string, seatNo int) error
	RefundItems(ctx context.Context, orderID string, itemIDs []string) error
	GetPayment(ctx context.Context, orderID string) (*Payment, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, o *OrderDetail, items []Item) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    INSERT INTO order_details (id, seat_no, quantity, status, total_price, order_date, staff_id, admin_id)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
  `, o.ID, o.SeatNo, o.Quantity, o.Status, o.TotalPrice, o.OrderDate, o.StaffID, o.AdminID); err != nil {
		return err
	}

	for _, it := range items {
		if _, err := tx.Exec(ctx, `
      INSERT INTO order_items (id, order_detail_id, food_id, quantity, sub_total, extra_detail)
      VALUES ($1,$2,$3,$4,$5,$6)
    `, it.ID, o.ID, it.FoodID, it.Quantity, it.SubTotal, it.ExtraDetail); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*OrderDetail, []Item, error) {
	var o OrderDetail
	if err := r.db.QueryRow(ctx, `
    SELECT id, seat_no, quantity, status, total_price::text, order_date, staff_id, admin_id
    FROM order_details WHERE id=$1
  `, id).Scan(&o.ID, &o.SeatNo, &o.Quantity, &o.Status, &o.TotalPrice, &o.OrderDate, &o.StaffID, &o.AdminID); err != nil {
		return nil, nil, ErrNotFound
	}
	rows, err := r.db.Query(ctx, `
    SELECT i.id, i.order_detail_id, i.food_id, COALESCE(f.name,''), i.quantity, i.sub_total::text, i.extra_detail
    FROM order_items i
    LEFT JOIN foods f ON f.id = i.food_id
    WHERE i.order_detail_id=$1
    ORDER BY split_part(i.id, '-', 2)::int
  `, id)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderDetailID, &it.FoodID, &it.FoodName, &it.Quantity, &it.SubTotal, &it.ExtraDetail); err != nil {
			return nil, nil, err
		}
		items = append(items, it)
	}
	return &o, items, rows.Err()
}

func (r *PGRepo) List(ctx context.Context, q Query) ([]OrderDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx, `
    SELECT id, seat_no, quantity, status, total_price::text, order_date, staff_id, admin_id
    FROM order_details
    WHERE ($1::int IS NULL OR seat_no = $1)
      AND ($2 = '' OR status = $2)
    ORDER BY order_date DESC LIMIT $3 OFFSET $4
  `, q.SeatNo, q.Status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []OrderDetail
	for rows.Next() {
		var o OrderDetail
		if err := rows.Scan(&o.ID, &o.SeatNo, &o.Quantity, &o.Status, &o.TotalPrice, &o.OrderDate, &o.StaffID, &o.AdminID); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// FirstUnpaidBySeat returns the oldest Pending/Preparing order for the seat.
func (r *PGRepo) FirstUnpaidBySeat(ctx context.Context, seatNo int) (*OrderDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var o OrderDetail
	err := r.db.QueryRow(ctx, `
    SELECT id, seat_no, quantity, status, total_price::text, order_date, staff_id, admin_id
    FROM order_details
    WHERE seat_no=$1 AND status IN ($2,$3)
    ORDER BY order_date ASC LIMIT 1
  `, seatNo, StatusPending, StatusPreparing).Scan(&o.ID, &o.SeatNo, &o.Quantity, &o.Status, &o.TotalPrice, &o.OrderDate, &o.StaffID, &o.AdminID)
	if err != nil {
		return nil, ErrNotFound
	}
	return &o, nil
}

// MarkSent moves the order to Preparing and the seat to Occupied in one
// transaction. A missing seat row does not fail the send; the returned bool
// reports whether the seat was updated.
func (r *PGRepo) MarkSent(ctx context.Context, orderID string, seatNo int) (bool, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
    UPDATE order_details SET status=$2 WHERE id=$1
  `, orderID, StatusPreparing)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, ErrNotFound
	}

	seatTag, err := tx.Exec(ctx, `
    UPDATE seats SET status='Occupied' WHERE seat_no=$1
  `, seatNo)
	if err != nil {
		return false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return seatTag.RowsAffected() > 0, nil
}

// ConfirmPayment persists the payment row, marks the order Paid and frees
// the seat as one transaction. A failure here after the gateway captured the
// money is the caller's reconciliation case.
func (r *PGRepo) ConfirmPayment(ctx context.Context, p *Payment, orderID string, seatNo int) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    INSERT INTO payments (id, order_detail_id, payment_method, subtotal, tax, service_charge,
                          total_price, amount_paid, payment_date, gateway_transaction_id)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
  `, p.ID, orderID, p.Method, p.Subtotal, p.Tax, p.ServiceCharge,
		p.TotalPrice, p.AmountPaid, p.PaymentDate, p.GatewayTransactionID); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
    UPDATE order_details SET status=$2 WHERE id=$1
  `, orderID, StatusPaid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `
    UPDATE seats SET status='Available' WHERE seat_no=$1
  `, seatNo); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// RefundItems zeroes the selected items' subtotals, recomputes the order
// total and derives the refund status, all in one transaction. Zeroing an
// already-zero item is a no-op, so re-running the same refund is safe.
func (r *PGRepo) RefundItems(ctx context.Context, orderID string, itemIDs []string) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    UPDATE order_items SET sub_total=0
    WHERE order_detail_id=$1 AND id = ANY($2)
  `, orderID, itemIDs); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
    UPDATE order_details d SET
      total_price = (SELECT COALESCE(SUM(sub_total),0) FROM order_items WHERE order_detail_id=d.id),
      status = CASE WHEN EXISTS (SELECT 1 FROM order_items WHERE order_detail_id=d.id AND sub_total > 0)
               THEN $2 ELSE $3 END
    WHERE d.id=$1
  `, orderID, StatusPartiallyRefunded, StatusRefunded)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) GetPayment(ctx context.Context, orderID string) (*Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p Payment
	err := r.db.QueryRow(ctx, `
    SELECT id, order_detail_id, payment_method, subtotal::text, tax::text, service_charge::text,
           total_price::text, amount_paid::text, payment_date, gateway_transaction_id
    FROM payments WHERE order_detail_id=$1
  `, orderID).Scan(&p.ID, &p.OrderDetailID, &p.Method, &p.Subtotal, &p.Tax, &p.ServiceCharge,
		&p.TotalPrice, &p.AmountPaid, &p.PaymentDate, &p.GatewayTransactionID)
	if err != nil {
		return nil, ErrNotFound
	}
	return &p, nil
}
