package order

// CreateOrderRequest asks to materialize a seat's cart into an order.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	SeatNo  int    `json:"seat_no" example:"5"`
	StaffID string `json:"staff_id,omitempty" example:"S001"`
	AdminID string `json:"admin_id,omitempty" example:"A00001"`
}

// RefundRequest selects the line items to refund on an order.
// swagger:model RefundRequest
type RefundRequest struct {
	ItemIDs []string `json:"item_ids"`
}
