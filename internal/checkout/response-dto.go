package checkout

import "skybook/internal/seats"

// SessionResponse is the session state returned to the client after
// every mutation.
type SessionResponse struct {
	ID          string       `json:"id"`
	CurrentStep string       `json:"current_step"`
	Aggregate   Aggregate    `json:"aggregate"`
	SeatMap     []seats.Seat `json:"seat_map,omitempty"`
	SeatMapLeg  string       `json:"seat_map_leg,omitempty"`
}

// ToResponse converts a session for the wire.
func (s *Session) ToResponse() SessionResponse {
	resp := SessionResponse{
		ID:          s.ID,
		CurrentStep: s.Current.String(),
		Aggregate:   s.Aggregate,
	}
	if s.Engine != nil {
		resp.SeatMap = s.Engine.Inventory.Seats
		resp.SeatMapLeg = string(s.EngineLeg)
	}
	return resp
}
