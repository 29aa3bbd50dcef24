package flights

// PaginatedFlights wraps a flight list page.
type PaginatedFlights struct {
	Flights []Flight `json:"flights"`
	Total   int64    `json:"total"`
	Limit   int      `json:"limit"`
	Offset  int      `json:"offset"`
}
