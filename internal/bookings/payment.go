package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrPaymentDeclined = errors.New("payment declined")

// ChargeRequest is one capture attempt against the booking total.
type ChargeRequest struct {
	BookingRef string
	Amount     float64
	Currency   string
	Method     string
}

type ChargeResult struct {
	TransactionID string
	Status        PaymentStatus
}

// PaymentGateway abstracts the payment processor so the service can be
// tested without one and swapped for a real PSP integration later.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
	Refund(ctx context.Context, transactionID string, amount float64) error
}

// simulatedGateway approves every well-formed charge. It stands in for
// the processor in local and test environments.
type simulatedGateway struct{}

func NewSimulatedGateway() PaymentGateway {
	return &simulatedGateway{}
}

func (g *simulatedGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrPaymentDeclined)
	}
	if req.Method == "" {
		return nil, fmt.Errorf("%w: missing payment method", ErrPaymentDeclined)
	}

	return &ChargeResult{
		TransactionID: "txn_" + uuid.NewString(),
		Status:        PaymentCompleted,
	}, nil
}

func (g *simulatedGateway) Refund(ctx context.Context, transactionID string, amount float64) error {
	if transactionID == "" {
		return errors.New("missing transaction id")
	}
	return nil
}
