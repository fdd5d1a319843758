package order

import "time"

const (
	StatusPending           = "Pending"
	StatusPreparing         = "Preparing"
	StatusPaid              = "Paid"
	StatusRefunded          = "Refunded"
	StatusPartiallyRefunded = "Partially Refunded"
)

type OrderDetail struct {
	ID         string    `json:"id"`
	SeatNo     int       `json:"seat_no"`
	Quantity   int       `json:"quantity"`
	Status     string    `json:"status"`
	TotalPrice string    `json:"total_price"` // NUMERIC -> string
	OrderDate  time.Time `json:"order_date"`
	StaffID    *string   `json:"staff_id,omitempty"`
	AdminID    *string   `json:"admin_id,omitempty"`
}

type Item struct {
	ID            string `json:"id"`
	OrderDetailID string `json:"order_detail_id"`
	FoodID        string `json:"food_id"`
	FoodName      string `json:"food_name,omitempty"`
	Quantity      int    `json:"quantity"`
	SubTotal      string `json:"sub_total"`
	ExtraDetail   string `json:"extra_detail,omitempty"`
}

type Payment struct {
	ID                   string    `json:"id"`
	OrderDetailID        string    `json:"order_detail_id"`
	Method               string    `json:"payment_method"`
	Subtotal             string    `json:"subtotal"`
	Tax                  string    `json:"tax"`
	ServiceCharge        string    `json:"service_charge"`
	TotalPrice           string    `json:"total_price"`
	AmountPaid           string    `json:"amount_paid"`
	PaymentDate          time.Time `json:"payment_date"`
	GatewayTransactionID string    `json:"gateway_transaction_id"`
}
