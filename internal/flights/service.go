package flights

import (
	"context"
	"fmt"

	"skybook/internal/checkout"
	"skybook/internal/seats"

	"github.com/google/uuid"
)

// Service exposes the flight read model. It also satisfies
// checkout.FlightService so the checkout flow can resolve fares and
// seat maps without knowing the persistence layer.
type Service interface {
	List(ctx context.Context, query ListQuery) ([]Flight, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Flight, error)

	FlightRef(ctx context.Context, flightID, cabinID uuid.UUID) (*checkout.FlightRef, error)
	SeatMap(ctx context.Context, flightID, cabinID uuid.UUID) ([]seats.RawSeat, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, query ListQuery) ([]Flight, int64, error) {
	if query.Limit <= 0 || query.Limit > 100 {
		query.Limit = 20
	}
	if query.Offset < 0 {
		query.Offset = 0
	}
	return s.repo.List(ctx, query)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) FlightRef(ctx context.Context, flightID, cabinID uuid.UUID) (*checkout.FlightRef, error) {
	flight, err := s.repo.GetByID(ctx, flightID)
	if err != nil {
		return nil, err
	}

	cabin, err := flight.CabinByID(cabinID)
	if err != nil {
		return nil, fmt.Errorf("flight %s: %w", flightID, err)
	}

	return &checkout.FlightRef{
		FlightID:     flight.ID,
		CabinID:      cabin.ID,
		FlightNumber: flight.FlightNumber,
		Origin:       flight.Origin,
		Destination:  flight.Destination,
		Fare:         cabin.Fare,
	}, nil
}

// SeatMap returns the raw seat entries for the given cabin. A missing
// cabin or an empty map is a blocking error: the seat screen has
// nothing to render without it.
func (s *service) SeatMap(ctx context.Context, flightID, cabinID uuid.UUID) ([]seats.RawSeat, error) {
	flight, err := s.repo.GetByID(ctx, flightID)
	if err != nil {
		return nil, err
	}

	cabin, err := flight.CabinByID(cabinID)
	if err != nil {
		return nil, fmt.Errorf("flight %s: %w", flightID, err)
	}

	if len(cabin.SeatMap) == 0 {
		return nil, seats.ErrEmptySeatMap
	}

	return cabin.SeatMap, nil
}
