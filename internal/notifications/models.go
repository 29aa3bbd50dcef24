package notifications

import "time"

// BookingConfirmedEvent is published to Kafka when a booking is paid
// and persisted. Downstream consumers (email, itinerary, analytics)
// key on the booking reference.
type BookingConfirmedEvent struct {
	BookingID   string    `json:"booking_id"`
	BookingRef  string    `json:"booking_ref"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	TotalPrice  float64   `json:"total_price"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// BookingCancelledEvent is published when a confirmed booking is
// voided by the traveller.
type BookingCancelledEvent struct {
	BookingID   string    `json:"booking_id"`
	BookingRef  string    `json:"booking_ref"`
	UserID      string    `json:"user_id"`
	CancelledAt time.Time `json:"cancelled_at"`
}
