package seats

import (
	"github.com/google/uuid"
)

// SeatStatus is the closed set of per-seat states.
// AVAILABLE and SELECTED are the two user-editable states; UNAVAILABLE
// is fixed by inventory data and has no outgoing transitions.
type SeatStatus string

const (
	StatusAvailable   SeatStatus = "AVAILABLE"
	StatusUnavailable SeatStatus = "UNAVAILABLE"
	StatusSelected    SeatStatus = "SELECTED"
)

// Seat is one typed seat within a cabin. Identity is (Row, Column)
// within one cabin.
type Seat struct {
	Row     int        `json:"row"`
	Column  string     `json:"column"`
	Status  SeatStatus `json:"status"`
	Price   float64    `json:"price"`
	CabinID uuid.UUID  `json:"cabin_id"`
}

// RawSeat is a seat-map entry as delivered by flight inventory data.
type RawSeat struct {
	SeatNumber  string   `json:"seat_number"`
	IsAvailable bool     `json:"is_available"`
	Price       *float64 `json:"price,omitempty"`
}

// SeatInventory is the ordered seat collection for one flight-leg/cabin
// pair. It is built once per seat-map fetch and owned by a
// SelectionEngine for the lifetime of one seat-selection visit.
type SeatInventory struct {
	CabinID uuid.UUID `json:"cabin_id"`
	Seats   []Seat    `json:"seats"`
}

// SeatAt returns the seat at (row, column), or nil if none exists.
func (inv *SeatInventory) SeatAt(row int, column string) *Seat {
	for i := range inv.Seats {
		if inv.Seats[i].Row == row && inv.Seats[i].Column == column {
			return &inv.Seats[i]
		}
	}
	return nil
}
