// Package catalog provides the food catalog collaborator: current price and
// name lookups at order-assembly time, plus the menu listing.
package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("food not found")
)

type Query struct {
	Q      string
	Limit  int
	Offset int
}

type Repository interface {
	GetByID(ctx context.Context, id string) (*Food, error)
	List(ctx context.Context, q Query) ([]Food, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Food, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var f Food
	err := r.db.QueryRow(ctx, `
		SELECT id, name, price::text, description, category_id, created_at, updated_at
		FROM foods WHERE id=$1
	`, id).Scan(&f.ID, &f.Name, &f.Price, &f.Description, &f.CategoryID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, ErrNotFound
	}
	return &f, nil
}

func (r *PGRepo) List(ctx context.Context, q Query) ([]Food, error) {
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

	search := strings.TrimSpace(q.Q)

	rows, err := r.db.Query(ctx, `
		SELECT id, name, price::text, description, category_id, created_at, updated_at
		FROM foods
		WHERE ($1 = '' OR name ILIKE '%'||$1||'%' OR description ILIKE '%'||$1||'%')
		ORDER BY id LIMIT $2 OFFSET $3
	`, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Food
	for rows.Next() {
		var f Food
		if err := rows.Scan(&f.ID, &f.Name, &f.Price, &f.Description, &f.CategoryID, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
