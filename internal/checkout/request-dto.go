package checkout

// start a checkout session, optionally carrying the search criteria
type StartSessionRequest struct {
	SearchCriteria *SearchCriteria `json:"search_criteria,omitempty"`
}

// pin a flight/cabin to one leg
type SelectFlightRequest struct {
	Leg      string `json:"leg" binding:"required,oneof=outbound inbound"`
	FlightID string `json:"flight_id" binding:"required,uuid"`
	CabinID  string `json:"cabin_id" binding:"required,uuid"`
}

// index-addressed jump between steps, with the current step's
// in-progress data to commit on forward jumps
type JumpRequest struct {
	To   string    `json:"to" binding:"required,oneof=passenger baggage seat payment"`
	Data *StepData `json:"data,omitempty"`
}

// toggle one seat on the loaded seat map
type ToggleSeatRequest struct {
	Row    int    `json:"row" binding:"required,min=1"`
	Column string `json:"column" binding:"required,len=1"`
}
