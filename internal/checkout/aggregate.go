package checkout

import (
	"skybook/internal/seats"

	"github.com/google/uuid"
)

// FlightRef pins one selected flight leg and cabin, with the fare that
// was quoted at selection time.
type FlightRef struct {
	FlightID     uuid.UUID `json:"flight_id"`
	CabinID      uuid.UUID `json:"cabin_id"`
	FlightNumber string    `json:"flight_number"`
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	Fare         float64   `json:"fare"`
}

// Passenger is one traveller as captured by the passenger step. The
// step always submits the complete list; passengers are never merged
// field by field.
type Passenger struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Gender      string `json:"gender" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	CountryCode string `json:"country_code" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
}

// FullName derives the display name.
func (p Passenger) FullName() string {
	return p.FirstName + " " + p.LastName
}

// BaggageSelection is the single checked-bag choice for a booking.
type BaggageSelection struct {
	Type        string  `json:"type"`
	WeightLabel string  `json:"weight_label"`
	Price       float64 `json:"price"`
}

// SearchCriteria records the search that produced the selected flights.
type SearchCriteria struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date,omitempty"`
	Passengers    int    `json:"passengers"`
}

// Aggregate is the single owner of all choices made across the checkout
// flow. Steps contribute different fields at different times; partial
// updates must never clobber fields they do not carry.
//
// TotalPrice is not recomputed here: the flow controller recomputes it
// after every price-relevant change and writes it back via ApplyUpdate.
type Aggregate struct {
	OutboundFlight *FlightRef        `json:"outbound_flight,omitempty"`
	InboundFlight  *FlightRef        `json:"inbound_flight,omitempty"`
	Passengers     []Passenger       `json:"passengers"`
	SelectedSeats  []seats.Seat      `json:"selected_seats"`
	Baggage        *BaggageSelection `json:"baggage,omitempty"`
	Protection     bool              `json:"protection"`
	TotalPrice     float64           `json:"total_price"`
	SearchCriteria *SearchCriteria   `json:"search_criteria,omitempty"`
}

// Update is a partial aggregate: only non-nil fields are applied.
type Update struct {
	OutboundFlight *FlightRef        `json:"outbound_flight,omitempty"`
	InboundFlight  *FlightRef        `json:"inbound_flight,omitempty"`
	Passengers     []Passenger       `json:"passengers,omitempty"`
	SelectedSeats  []seats.Seat      `json:"selected_seats,omitempty"`
	Baggage        *BaggageSelection `json:"baggage,omitempty"`
	Protection     *bool             `json:"protection,omitempty"`
	TotalPrice     *float64          `json:"total_price,omitempty"`
	SearchCriteria *SearchCriteria   `json:"search_criteria,omitempty"`
}

// ApplyUpdate shallow-merges the supplied top-level fields into the
// aggregate, leaving all unspecified fields untouched.
func (a *Aggregate) ApplyUpdate(u Update) {
	if u.OutboundFlight != nil {
		a.OutboundFlight = u.OutboundFlight
	}
	if u.InboundFlight != nil {
		a.InboundFlight = u.InboundFlight
	}
	if u.Passengers != nil {
		a.Passengers = u.Passengers
	}
	if u.SelectedSeats != nil {
		a.SelectedSeats = u.SelectedSeats
	}
	if u.Baggage != nil {
		a.Baggage = u.Baggage
	}
	if u.Protection != nil {
		a.Protection = *u.Protection
	}
	if u.TotalPrice != nil {
		a.TotalPrice = *u.TotalPrice
	}
	if u.SearchCriteria != nil {
		a.SearchCriteria = u.SearchCriteria
	}
}

// SetPassengers replaces the whole passenger list.
func (a *Aggregate) SetPassengers(list []Passenger) {
	a.Passengers = list
}

// SetSelectedSeats replaces the entire seat list across all legs.
// Seat-step confirmation goes through MergeLegSeats instead so a second
// leg's selection cannot wipe the first leg's seats.
func (a *Aggregate) SetSelectedSeats(list []seats.Seat) {
	a.SelectedSeats = list
}

// MergeLegSeats replaces only the seats belonging to the given cabin
// and keeps every other leg's selection intact.
func (a *Aggregate) MergeLegSeats(cabinID uuid.UUID, list []seats.Seat) {
	kept := a.SelectedSeats[:0]
	for _, s := range a.SelectedSeats {
		if s.CabinID != cabinID {
			kept = append(kept, s)
		}
	}
	a.SelectedSeats = append(kept, list...)
}

// SetBaggage records the checked-bag choice.
func (a *Aggregate) SetBaggage(item *BaggageSelection) {
	a.Baggage = item
}

// SetProtection records the travel-protection flag.
func (a *Aggregate) SetProtection(flag bool) {
	a.Protection = flag
}

// Clear resets to the empty initial aggregate, used when starting a
// new search.
func (a *Aggregate) Clear() {
	*a = Aggregate{}
}

// SeatTotal is the price sum of all selected seats across legs.
func (a *Aggregate) SeatTotal() float64 {
	var total float64
	for _, s := range a.SelectedSeats {
		total += s.Price
	}
	return total
}
