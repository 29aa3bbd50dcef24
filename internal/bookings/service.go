package bookings

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"skybook/internal/checkout"
	"skybook/internal/notifications"
	"skybook/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrBookingForbidden = errors.New("booking belongs to another user")
	ErrMissingFlight    = errors.New("checkout has no outbound flight selected")
	ErrNoPassengers     = errors.New("checkout has no passengers")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
)

// CheckoutReader is the slice of the checkout service this package
// needs: read a session for submission, then retire it once the
// booking is durable.
type CheckoutReader interface {
	GetSession(ctx context.Context, sessionID, userID string) (*checkout.Session, error)
	Cancel(ctx context.Context, sessionID, userID string) error
}

type Service interface {
	Submit(ctx context.Context, userID, sessionID, paymentMethod string) (*Booking, error)
	GetBooking(ctx context.Context, userID string, bookingID uuid.UUID) (*Booking, error)
	ListBookings(ctx context.Context, userID string, limit, offset int) ([]Booking, int64, error)
	CancelBooking(ctx context.Context, userID string, bookingID uuid.UUID) (*Booking, error)
}

type service struct {
	repo          Repository
	checkout      CheckoutReader
	gateway       PaymentGateway
	producer      notifications.Producer
	protectionFee float64
	logger        *logger.Logger
}

func NewService(repo Repository, checkoutSvc CheckoutReader, gateway PaymentGateway, producer notifications.Producer, protectionFee float64) Service {
	return &service{
		repo:          repo,
		checkout:      checkoutSvc,
		gateway:       gateway,
		producer:      producer,
		protectionFee: protectionFee,
		logger:        logger.GetDefault(),
	}
}

// Submit turns a completed checkout session into a durable booking:
// validate the aggregate, capture payment, persist, retire the
// session, then announce the booking. Publishing is fire and forget;
// a broker outage must not fail a paid booking.
func (s *service) Submit(ctx context.Context, userID, sessionID, paymentMethod string) (*Booking, error) {
	sess, err := s.checkout.GetSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	agg := sess.Aggregate
	if agg.OutboundFlight == nil {
		return nil, ErrMissingFlight
	}
	if len(agg.Passengers) == 0 {
		return nil, ErrNoPassengers
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	booking := buildBooking(uid, agg, s.protectionFee)

	result, err := s.gateway.Charge(ctx, ChargeRequest{
		BookingRef: booking.BookingRef,
		Amount:     booking.TotalPrice,
		Currency:   "USD",
		Method:     paymentMethod,
	})
	if err != nil {
		return nil, err
	}

	booking.Status = StatusConfirmed
	booking.Payment = &Payment{
		Amount:        booking.TotalPrice,
		Currency:      "USD",
		Method:        paymentMethod,
		Status:        result.Status,
		TransactionID: result.TransactionID,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		if refundErr := s.gateway.Refund(ctx, result.TransactionID, booking.TotalPrice); refundErr != nil {
			s.logger.WithError(refundErr).ErrorContext(ctx, "Failed to refund after booking persistence failure",
				"transaction_id", result.TransactionID)
		}
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	if err := s.checkout.Cancel(ctx, sessionID, userID); err != nil {
		s.logger.WithError(err).WarnContext(ctx, "Failed to retire checkout session after booking",
			"session_id", sessionID, "booking_ref", booking.BookingRef)
	}

	s.logger.LogBookingSubmitted(ctx, booking.ID.String(), sessionID, userID)

	go s.publishConfirmed(booking, agg)

	return booking, nil
}

func (s *service) GetBooking(ctx context.Context, userID string, bookingID uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID.String() != userID {
		return nil, ErrBookingForbidden
	}
	return booking, nil
}

func (s *service) ListBookings(ctx context.Context, userID string, limit, offset int) ([]Booking, int64, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid user id: %w", err)
	}

	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByUser(ctx, uid, limit, offset)
}

// CancelBooking voids a booking and refunds a completed payment.
func (s *service) CancelBooking(ctx context.Context, userID string, bookingID uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID.String() != userID {
		return nil, ErrBookingForbidden
	}
	if booking.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	if err := s.repo.MarkCancelled(ctx, bookingID); err != nil {
		return nil, err
	}

	if booking.Payment != nil && booking.Payment.Status == PaymentCompleted {
		if err := s.gateway.Refund(ctx, booking.Payment.TransactionID, booking.Payment.Amount); err != nil {
			s.logger.WithError(err).ErrorContext(ctx, "Failed to refund cancelled booking",
				"booking_ref", booking.BookingRef)
		} else {
			booking.Payment.Status = PaymentRefunded
			if err := s.repo.SavePayment(ctx, booking.Payment); err != nil {
				s.logger.WithError(err).ErrorContext(ctx, "Failed to record refund",
					"booking_ref", booking.BookingRef)
			}
		}
	}

	s.logger.LogBookingCancelled(ctx, bookingID.String(), userID)

	now := time.Now()
	booking.Status = StatusCancelled
	booking.CancelledAt = &now

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.producer.PublishBookingCancelled(ctx, notifications.BookingCancelledEvent{
			BookingID:   booking.ID.String(),
			BookingRef:  booking.BookingRef,
			UserID:      booking.UserID.String(),
			CancelledAt: now,
		}); err != nil {
			s.logger.WithError(err).WarnContext(ctx, "Failed to publish booking cancellation",
				"booking_ref", booking.BookingRef)
		}
	}()

	return booking, nil
}

func (s *service) publishConfirmed(booking *Booking, agg checkout.Aggregate) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	lead := agg.Passengers[0]
	event := notifications.BookingConfirmedEvent{
		BookingID:   booking.ID.String(),
		BookingRef:  booking.BookingRef,
		UserID:      booking.UserID.String(),
		Email:       lead.Email,
		FullName:    lead.FullName(),
		Origin:      agg.OutboundFlight.Origin,
		Destination: agg.OutboundFlight.Destination,
		TotalPrice:  booking.TotalPrice,
		ConfirmedAt: time.Now(),
	}
	if err := s.producer.PublishBookingConfirmed(ctx, event); err != nil {
		s.logger.WithError(err).WarnContext(ctx, "Failed to publish booking confirmation",
			"booking_ref", booking.BookingRef)
	}
}

// buildBooking flattens the checkout aggregate into relational rows.
func buildBooking(userID uuid.UUID, agg checkout.Aggregate, protectionFee float64) *Booking {
	booking := &Booking{
		BookingRef:       generateBookingRef(),
		UserID:           userID,
		Status:           StatusPending,
		OutboundFlightID: agg.OutboundFlight.FlightID,
		OutboundCabinID:  agg.OutboundFlight.CabinID,
		Protection:       agg.Protection,
		TotalPrice:       agg.TotalPrice,
	}
	if agg.Protection {
		booking.ProtectionFee = protectionFee
	}

	if agg.InboundFlight != nil {
		booking.InboundFlightID = &agg.InboundFlight.FlightID
		booking.InboundCabinID = &agg.InboundFlight.CabinID
	}
	if agg.Baggage != nil {
		booking.BaggageType = agg.Baggage.Type
		booking.BaggagePrice = agg.Baggage.Price
	}

	for _, p := range agg.Passengers {
		booking.Passengers = append(booking.Passengers, BookingPassenger{
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			Gender:      p.Gender,
			Email:       p.Email,
			CountryCode: p.CountryCode,
			Phone:       p.Phone,
		})
	}

	for _, seat := range agg.SelectedSeats {
		booking.Seats = append(booking.Seats, BookingSeat{
			CabinID: seat.CabinID,
			Row:     seat.Row,
			Column:  seat.Column,
			Price:   seat.Price,
		})
	}

	return booking
}

const refCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generateBookingRef produces a short reference like "SKY-7GKQ2M".
// Ambiguous characters are excluded from the charset.
func generateBookingRef() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// fall back to a uuid fragment rather than panic.
		return "SKY-" + uuid.NewString()[:6]
	}
	for i, b := range buf {
		buf[i] = refCharset[int(b)%len(refCharset)]
	}
	return "SKY-" + string(buf)
}
