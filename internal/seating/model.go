package seating

const (
	StatusAvailable = "Available"
	StatusOccupied  = "Occupied"
)

type Seat struct {
	SeatNo int    `json:"seat_no"`
	Status string `json:"status"`
}
