package catalog

import "time"

type Food struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"` // NUMERIC -> string
	Description string    `json:"description"`
	CategoryID  string    `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
