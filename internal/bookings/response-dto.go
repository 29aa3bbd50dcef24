package bookings

// PaginatedBookings wraps a page of a user's booking history.
type PaginatedBookings struct {
	Bookings []Booking `json:"bookings"`
	Total    int64     `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
}
