package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skybook/internal/seats"

	"github.com/google/uuid"
)

var (
	ErrSessionForbidden = errors.New("checkout session belongs to another user")
	ErrNoFlightSelected = errors.New("no flight selected for this leg")
	ErrNoSeatMapLoaded  = errors.New("no seat map loaded for this session")
)

// FlightService is the narrow flight-lookup surface the checkout flow
// needs (avoids a dependency on the full flights package API).
type FlightService interface {
	FlightRef(ctx context.Context, flightID, cabinID uuid.UUID) (*FlightRef, error)
	SeatMap(ctx context.Context, flightID, cabinID uuid.UUID) ([]seats.RawSeat, error)
}

// Service drives checkout sessions: one aggregate per session, mutated
// step by step, read by every later step.
type Service interface {
	StartSession(ctx context.Context, userID string, criteria *SearchCriteria) (*Session, error)
	GetSession(ctx context.Context, sessionID, userID string) (*Session, error)
	Cancel(ctx context.Context, sessionID, userID string) error

	SelectFlight(ctx context.Context, sessionID, userID string, leg Leg, flightID, cabinID uuid.UUID) (*Session, error)
	Jump(ctx context.Context, sessionID, userID string, target Step, inProgress *StepData) (*Session, error)

	LoadSeatMap(ctx context.Context, sessionID, userID string, leg Leg) (*Session, error)
	ToggleSeat(ctx context.Context, sessionID, userID string, row int, column string) (*Session, error)
	ConfirmSeats(ctx context.Context, sessionID, userID string) (*Session, error)
}

type service struct {
	store   Store
	flights FlightService
	flow    *FlowController
}

// NewService creates a checkout service over the given session store
// and flight lookup.
func NewService(store Store, flights FlightService, flow *FlowController) Service {
	return &service{
		store:   store,
		flights: flights,
		flow:    flow,
	}
}

func (s *service) StartSession(ctx context.Context, userID string, criteria *SearchCriteria) (*Session, error) {
	now := time.Now().UTC()
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Current:   StepPassenger,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if criteria != nil {
		sess.Aggregate.ApplyUpdate(Update{SearchCriteria: criteria})
	}

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return sess, nil
}

func (s *service) GetSession(ctx context.Context, sessionID, userID string) (*Session, error) {
	return s.ownedSession(ctx, sessionID, userID)
}

func (s *service) Cancel(ctx context.Context, sessionID, userID string) error {
	if _, err := s.ownedSession(ctx, sessionID, userID); err != nil {
		return err
	}
	return s.store.Delete(ctx, sessionID)
}

func (s *service) SelectFlight(ctx context.Context, sessionID, userID string, leg Leg, flightID, cabinID uuid.UUID) (*Session, error) {
	sess, err := s.ownedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	ref, err := s.flights.FlightRef(ctx, flightID, cabinID)
	if err != nil {
		return nil, err
	}

	if leg == LegInbound {
		sess.Aggregate.ApplyUpdate(Update{InboundFlight: ref})
	} else {
		sess.Aggregate.ApplyUpdate(Update{OutboundFlight: ref})
	}
	s.flow.RecomputeTotal(&sess.Aggregate)

	return sess, s.save(ctx, sess)
}

func (s *service) Jump(ctx context.Context, sessionID, userID string, target Step, inProgress *StepData) (*Session, error) {
	sess, err := s.ownedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.flow.Jump(sess, target, inProgress); err != nil {
		return nil, err
	}

	return sess, s.save(ctx, sess)
}

// LoadSeatMap builds a fresh seat inventory for the leg's selected
// cabin and parks the selection engine in the session. Any previous
// engine state is discarded, matching a screen re-entry.
func (s *service) LoadSeatMap(ctx context.Context, sessionID, userID string, leg Leg) (*Session, error) {
	sess, err := s.ownedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	var ref *FlightRef
	if leg == LegInbound {
		ref = sess.Aggregate.InboundFlight
	} else {
		ref = sess.Aggregate.OutboundFlight
	}
	if ref == nil {
		return nil, ErrNoFlightSelected
	}

	raw, err := s.flights.SeatMap(ctx, ref.FlightID, ref.CabinID)
	if err != nil {
		return nil, err
	}

	inv, err := seats.BuildInventory(ref.CabinID, raw)
	if err != nil {
		return nil, err
	}

	// Re-select seats already confirmed for this leg so a revisit shows
	// the prior selection.
	for _, prior := range sess.Aggregate.SelectedSeats {
		if prior.CabinID == ref.CabinID {
			if seat := inv.SeatAt(prior.Row, prior.Column); seat != nil && seat.Status == seats.StatusAvailable {
				seat.Status = seats.StatusSelected
			}
		}
	}

	sess.Engine = seats.NewSelectionEngine(inv)
	sess.EngineLeg = leg

	return sess, s.save(ctx, sess)
}

func (s *service) ToggleSeat(ctx context.Context, sessionID, userID string, row int, column string) (*Session, error) {
	sess, err := s.ownedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if sess.Engine == nil {
		return nil, ErrNoSeatMapLoaded
	}

	sess.Engine.Toggle(row, column)

	return sess, s.save(ctx, sess)
}

// ConfirmSeats validates the current selection and merges it into the
// aggregate, keyed by the leg's cabin so the other leg's seats survive.
func (s *service) ConfirmSeats(ctx context.Context, sessionID, userID string) (*Session, error) {
	sess, err := s.ownedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if sess.Engine == nil {
		return nil, ErrNoSeatMapLoaded
	}

	selected, err := sess.Engine.ConfirmSelection()
	if err != nil {
		return nil, err
	}

	sess.Aggregate.MergeLegSeats(sess.Engine.Inventory.CabinID, selected)
	s.flow.RecomputeTotal(&sess.Aggregate)

	// The inventory is screen-scoped; only the confirmed subset lives on.
	sess.Engine = nil
	sess.EngineLeg = ""

	return sess, s.save(ctx, sess)
}

func (s *service) ownedSession(ctx context.Context, sessionID, userID string) (*Session, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, ErrSessionForbidden
	}
	return sess, nil
}

func (s *service) save(ctx context.Context, sess *Session) error {
	sess.UpdatedAt = time.Now().UTC()
	if err := s.store.Save(ctx, sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
