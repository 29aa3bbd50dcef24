package bookings

// SubmitBookingRequest finalizes a checkout session into a booking.
type SubmitBookingRequest struct {
	SessionID     string `json:"session_id" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required,oneof=CARD PAYPAL BANK_TRANSFER"`
}
