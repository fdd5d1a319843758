// Package seating is the seat registry collaborator. A seat is Occupied
// while it has an active order and goes back to Available when the order is
// paid.
package seating

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("seat not found")
	ErrNoSeats  = errors.New("no seats to remove")
)

type Repository interface {
	List(ctx context.Context) ([]Seat, error)
	GetByNo(ctx context.Context, seatNo int) (*Seat, error)
	Add(ctx context.Context) (*Seat, error)
	RemoveMax(ctx context.Context) (int, error)
	UpdateStatus(ctx context.Context, seatNo int, status string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) List(ctx context.Context) ([]Seat, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT seat_no, status FROM seats ORDER BY seat_no
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Seat
	for rows.Next() {
		var s Seat
		if err := rows.Scan(&s.SeatNo, &s.Status); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetByNo(ctx context.Context, seatNo int) (*Seat, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s Seat
	err := r.db.QueryRow(ctx, `
		SELECT seat_no, status FROM seats WHERE seat_no=$1
	`, seatNo).Scan(&s.SeatNo, &s.Status)
	if err != nil {
		return nil, ErrNotFound
	}
	return &s, nil
}

// Add inserts a seat at the smallest free seat number starting from 1.
func (r *PGRepo) Add(ctx context.Context) (*Seat, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var seatNo int
	err := r.db.QueryRow(ctx, `
		INSERT INTO seats (seat_no, status)
		SELECT MIN(n), $1
		FROM generate_series(1, (SELECT COALESCE(MAX(seat_no),0)+1 FROM seats)) n
		WHERE n NOT IN (SELECT seat_no FROM seats)
		RETURNING seat_no
	`, StatusAvailable).Scan(&seatNo)
	if err != nil {
		return nil, err
	}
	return &Seat{SeatNo: seatNo, Status: StatusAvailable}, nil
}

// RemoveMax deletes the highest-numbered seat.
func (r *PGRepo) RemoveMax(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var seatNo int
	err := r.db.QueryRow(ctx, `
		DELETE FROM seats WHERE seat_no = (SELECT MAX(seat_no) FROM seats)
		RETURNING seat_no
	`).Scan(&seatNo)
	if err != nil {
		return 0, ErrNoSeats
	}
	return seatNo, nil
}

func (r *PGRepo) UpdateStatus(ctx context.Context, seatNo int, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE seats SET status=$2 WHERE seat_no=$1
	`, seatNo, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
