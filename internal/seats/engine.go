package seats

import "errors"

var ErrNoSeatsSelected = errors.New("at least one seat must be selected")

// SelectionEngine owns the mutable seat inventory for one cabin/leg and
// applies user-driven status transitions. It never touches the booking
// aggregate; confirmed selections are returned to the caller for merging.
//
// The struct is JSON-serializable so engine state can be parked in the
// checkout session between requests.
type SelectionEngine struct {
	Inventory SeatInventory `json:"inventory"`
}

// NewSelectionEngine wraps a built inventory.
func NewSelectionEngine(inv *SeatInventory) *SelectionEngine {
	return &SelectionEngine{Inventory: *inv}
}

// Toggle flips the seat at (row, column) between AVAILABLE and SELECTED.
// A missing seat or an UNAVAILABLE seat is a no-op: unavailable seats
// are never user-editable.
func (e *SelectionEngine) Toggle(row int, column string) {
	seat := e.Inventory.SeatAt(row, column)
	if seat == nil {
		return
	}

	switch seat.Status {
	case StatusAvailable:
		seat.Status = StatusSelected
	case StatusSelected:
		seat.Status = StatusAvailable
	}
}

// SelectedSeats returns the seats currently in SELECTED state, in
// inventory order.
func (e *SelectionEngine) SelectedSeats() []Seat {
	var selected []Seat
	for _, seat := range e.Inventory.Seats {
		if seat.Status == StatusSelected {
			selected = append(selected, seat)
		}
	}
	return selected
}

// TotalPrice is the price sum of the currently selected seats.
func (e *SelectionEngine) TotalPrice() float64 {
	var total float64
	for _, seat := range e.Inventory.Seats {
		if seat.Status == StatusSelected {
			total += seat.Price
		}
	}
	return total
}

// ConfirmSelection validates that at least one seat is selected and
// returns the selected seats. On validation failure no state changes.
func (e *SelectionEngine) ConfirmSelection() ([]Seat, error) {
	selected := e.SelectedSeats()
	if len(selected) == 0 {
		return nil, ErrNoSeatsSelected
	}
	return selected, nil
}
