package bookings

import (
	"context"
	"errors"
	"testing"

	"skybook/internal/checkout"
	"skybook/internal/notifications"
	"skybook/internal/seats"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, booking *Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *mockRepository) GetByRef(ctx context.Context, ref string) (*Booking, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *mockRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]Booking), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockRepository) MarkCancelled(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRepository) SavePayment(ctx context.Context, payment *Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

type mockCheckoutReader struct {
	mock.Mock
}

func (m *mockCheckoutReader) GetSession(ctx context.Context, sessionID, userID string) (*checkout.Session, error) {
	args := m.Called(ctx, sessionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Session), args.Error(1)
}

func (m *mockCheckoutReader) Cancel(ctx context.Context, sessionID, userID string) error {
	args := m.Called(ctx, sessionID, userID)
	return args.Error(0)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ChargeResult), args.Error(1)
}

func (m *mockGateway) Refund(ctx context.Context, transactionID string, amount float64) error {
	args := m.Called(ctx, transactionID, amount)
	return args.Error(0)
}

func completedSession(userID string) *checkout.Session {
	outCabin := uuid.New()
	return &checkout.Session{
		ID:     uuid.NewString(),
		UserID: userID,
		Aggregate: checkout.Aggregate{
			OutboundFlight: &checkout.FlightRef{
				FlightID: uuid.New(), CabinID: outCabin,
				FlightNumber: "SB101", Origin: "CGK", Destination: "DPS", Fare: 85.0,
			},
			Passengers: []checkout.Passenger{{
				FirstName: "Ava", LastName: "Traveller", Gender: "F",
				Email: "ava@example.com", CountryCode: "+62", Phone: "81234567890",
			}},
			SelectedSeats: []seats.Seat{
				{Row: 1, Column: "C", Status: seats.StatusSelected, Price: 20.0, CabinID: outCabin},
			},
			Baggage:    &checkout.BaggageSelection{Type: "CHECKED", WeightLabel: "20kg", Price: 18.0},
			Protection: true,
			TotalPrice: 138.0,
		},
	}
}

func TestSubmitCreatesConfirmedBooking(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()

	repo := &mockRepository{}
	reader := &mockCheckoutReader{}
	gateway := &mockGateway{}

	sess := completedSession(userID)
	reader.On("GetSession", ctx, sess.ID, userID).Return(sess, nil).Once()
	reader.On("Cancel", ctx, sess.ID, userID).Return(nil).Once()
	gateway.On("Charge", ctx, mock.MatchedBy(func(req ChargeRequest) bool {
		return req.Amount == 138.0 && req.Method == "CARD"
	})).Return(&ChargeResult{TransactionID: "txn_1", Status: PaymentCompleted}, nil).Once()
	repo.On("Create", ctx, mock.AnythingOfType("*bookings.Booking")).Return(nil).Once()

	svc := NewService(repo, reader, gateway, notifications.NewNoopProducer(), 15.0)
	booking, err := svc.Submit(ctx, userID, sess.ID, "CARD")
	require.NoError(t, err)

	require.Equal(t, StatusConfirmed, booking.Status)
	require.Equal(t, userID, booking.UserID.String())
	require.Len(t, booking.Passengers, 1)
	require.Len(t, booking.Seats, 1)
	require.Equal(t, 138.0, booking.TotalPrice)
	require.True(t, booking.Protection)
	require.Equal(t, 15.0, booking.ProtectionFee)
	require.Equal(t, "CHECKED", booking.BaggageType)
	require.NotNil(t, booking.Payment)
	require.Equal(t, "txn_1", booking.Payment.TransactionID)
	require.Regexp(t, `^SKY-[A-Z2-9]{6}$`, booking.BookingRef)

	repo.AssertExpectations(t)
	reader.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestSubmitWithoutProtectionCarriesNoFee(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()

	repo := &mockRepository{}
	reader := &mockCheckoutReader{}
	gateway := &mockGateway{}

	sess := completedSession(userID)
	sess.Aggregate.Protection = false
	sess.Aggregate.TotalPrice = 123.0
	reader.On("GetSession", ctx, sess.ID, userID).Return(sess, nil).Once()
	reader.On("Cancel", ctx, sess.ID, userID).Return(nil).Once()
	gateway.On("Charge", ctx, mock.AnythingOfType("ChargeRequest")).
		Return(&ChargeResult{TransactionID: "txn_2", Status: PaymentCompleted}, nil).Once()
	repo.On("Create", ctx, mock.AnythingOfType("*bookings.Booking")).Return(nil).Once()

	svc := NewService(repo, reader, gateway, notifications.NewNoopProducer(), 15.0)
	booking, err := svc.Submit(ctx, userID, sess.ID, "CARD")
	require.NoError(t, err)

	require.False(t, booking.Protection)
	require.Zero(t, booking.ProtectionFee)
}

func TestSubmitValidatesAggregate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()

	tests := []struct {
		name    string
		mutate  func(sess *checkout.Session)
		wantErr error
	}{
		{
			name:    "missing outbound flight",
			mutate:  func(sess *checkout.Session) { sess.Aggregate.OutboundFlight = nil },
			wantErr: ErrMissingFlight,
		},
		{
			name:    "no passengers",
			mutate:  func(sess *checkout.Session) { sess.Aggregate.Passengers = nil },
			wantErr: ErrNoPassengers,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &mockCheckoutReader{}
			sess := completedSession(userID)
			tt.mutate(sess)
			reader.On("GetSession", ctx, sess.ID, userID).Return(sess, nil).Once()

			svc := NewService(&mockRepository{}, reader, &mockGateway{}, notifications.NewNoopProducer(), 15.0)
			_, err := svc.Submit(ctx, userID, sess.ID, "CARD")
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSubmitPaymentDeclined(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()

	reader := &mockCheckoutReader{}
	gateway := &mockGateway{}
	repo := &mockRepository{}

	sess := completedSession(userID)
	reader.On("GetSession", ctx, sess.ID, userID).Return(sess, nil).Once()
	gateway.On("Charge", ctx, mock.Anything).Return(nil, ErrPaymentDeclined).Once()

	svc := NewService(repo, reader, gateway, notifications.NewNoopProducer(), 15.0)
	_, err := svc.Submit(ctx, userID, sess.ID, "CARD")

	require.ErrorIs(t, err, ErrPaymentDeclined)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	reader.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitRefundsWhenPersistenceFails(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()

	reader := &mockCheckoutReader{}
	gateway := &mockGateway{}
	repo := &mockRepository{}

	sess := completedSession(userID)
	reader.On("GetSession", ctx, sess.ID, userID).Return(sess, nil).Once()
	gateway.On("Charge", ctx, mock.Anything).
		Return(&ChargeResult{TransactionID: "txn_2", Status: PaymentCompleted}, nil).Once()
	repo.On("Create", ctx, mock.Anything).Return(errors.New("db down")).Once()
	gateway.On("Refund", ctx, "txn_2", 138.0).Return(nil).Once()

	svc := NewService(repo, reader, gateway, notifications.NewNoopProducer(), 15.0)
	_, err := svc.Submit(ctx, userID, sess.ID, "CARD")

	require.Error(t, err)
	gateway.AssertExpectations(t)
}

func TestGetBookingEnforcesOwnership(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	bookingID := uuid.New()

	repo := &mockRepository{}
	repo.On("GetByID", ctx, bookingID).
		Return(&Booking{ID: bookingID, UserID: owner, Status: StatusConfirmed}, nil).Twice()

	svc := NewService(repo, &mockCheckoutReader{}, &mockGateway{}, notifications.NewNoopProducer(), 15.0)

	got, err := svc.GetBooking(ctx, owner.String(), bookingID)
	require.NoError(t, err)
	require.Equal(t, bookingID, got.ID)

	_, err = svc.GetBooking(ctx, uuid.NewString(), bookingID)
	require.ErrorIs(t, err, ErrBookingForbidden)
}

func TestListBookingsClampsPagination(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	repo := &mockRepository{}
	repo.On("ListByUser", ctx, owner, 20, 0).Return([]Booking{}, int64(0), nil).Once()
	repo.On("ListByUser", ctx, owner, 100, 0).Return([]Booking{}, int64(0), nil).Once()

	svc := NewService(repo, &mockCheckoutReader{}, &mockGateway{}, notifications.NewNoopProducer(), 15.0)

	_, _, err := svc.ListBookings(ctx, owner.String(), 0, -5)
	require.NoError(t, err)

	_, _, err = svc.ListBookings(ctx, owner.String(), 500, 0)
	require.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestCancelBookingRefundsCompletedPayment(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	bookingID := uuid.New()

	payment := &Payment{BookingID: bookingID, Amount: 138.0, Status: PaymentCompleted, TransactionID: "txn_3"}
	repo := &mockRepository{}
	repo.On("GetByID", ctx, bookingID).
		Return(&Booking{ID: bookingID, UserID: owner, Status: StatusConfirmed, BookingRef: "SKY-TEST22", Payment: payment}, nil).Once()
	repo.On("MarkCancelled", ctx, bookingID).Return(nil).Once()
	repo.On("SavePayment", ctx, mock.MatchedBy(func(p *Payment) bool {
		return p.Status == PaymentRefunded
	})).Return(nil).Once()

	gateway := &mockGateway{}
	gateway.On("Refund", ctx, "txn_3", 138.0).Return(nil).Once()

	svc := NewService(repo, &mockCheckoutReader{}, gateway, notifications.NewNoopProducer(), 15.0)
	got, err := svc.CancelBooking(ctx, owner.String(), bookingID)
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, got.Status)
	require.NotNil(t, got.CancelledAt)

	repo.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestCancelBookingAlreadyCancelled(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	bookingID := uuid.New()

	repo := &mockRepository{}
	repo.On("GetByID", ctx, bookingID).
		Return(&Booking{ID: bookingID, UserID: owner, Status: StatusCancelled}, nil).Once()

	svc := NewService(repo, &mockCheckoutReader{}, &mockGateway{}, notifications.NewNoopProducer(), 15.0)
	_, err := svc.CancelBooking(ctx, owner.String(), bookingID)
	require.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestBookingRefFormat(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		ref := generateBookingRef()
		require.Regexp(t, `^SKY-[A-Z2-9]{6}$`, ref)
		seen[ref] = true
	}
	require.Greater(t, len(seen), 1, "references must not collide trivially")
}
