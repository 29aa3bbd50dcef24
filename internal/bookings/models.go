package bookings

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// Booking is the durable record created when a checkout session is
// submitted. The session's aggregate is flattened into relational rows
// so reporting and cancellation never need the session store.
type Booking struct {
	ID         uuid.UUID     `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	BookingRef string        `json:"booking_ref" gorm:"uniqueIndex;not null;type:varchar(12)"`
	UserID     uuid.UUID     `json:"user_id" gorm:"not null;type:uuid;index"`
	Status     BookingStatus `json:"status" gorm:"not null;type:varchar(20);default:'PENDING'"`

	OutboundFlightID uuid.UUID  `json:"outbound_flight_id" gorm:"not null;type:uuid"`
	OutboundCabinID  uuid.UUID  `json:"outbound_cabin_id" gorm:"not null;type:uuid"`
	InboundFlightID  *uuid.UUID `json:"inbound_flight_id,omitempty" gorm:"type:uuid"`
	InboundCabinID   *uuid.UUID `json:"inbound_cabin_id,omitempty" gorm:"type:uuid"`

	BaggageType   string  `json:"baggage_type,omitempty" gorm:"type:varchar(50)"`
	BaggagePrice  float64 `json:"baggage_price" gorm:"type:decimal(10,2);default:0"`
	Protection    bool    `json:"protection" gorm:"default:false"`
	ProtectionFee float64 `json:"protection_fee" gorm:"type:decimal(10,2);default:0"`
	TotalPrice    float64 `json:"total_price" gorm:"not null;type:decimal(10,2)"`

	Passengers []BookingPassenger `json:"passengers" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
	Seats      []BookingSeat      `json:"seats" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
	Payment    *Payment           `json:"payment,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`

	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	CancelledAt *time.Time     `json:"cancelled_at,omitempty"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BookingPassenger is one traveller on a booking.
type BookingPassenger struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	BookingID uuid.UUID `json:"booking_id" gorm:"not null;type:uuid;index"`

	FirstName   string `json:"first_name" gorm:"not null;type:varchar(100)"`
	LastName    string `json:"last_name" gorm:"not null;type:varchar(100)"`
	Gender      string `json:"gender" gorm:"not null;type:varchar(10)"`
	Email       string `json:"email" gorm:"not null;type:varchar(255)"`
	CountryCode string `json:"country_code" gorm:"not null;type:varchar(8)"`
	Phone       string `json:"phone" gorm:"not null;type:varchar(20)"`

	CreatedAt time.Time `json:"created_at"`
}

func (BookingPassenger) TableName() string {
	return "booking_passengers"
}

// BookingSeat is one purchased seat on one leg of a booking.
type BookingSeat struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	BookingID uuid.UUID `json:"booking_id" gorm:"not null;type:uuid;index"`
	CabinID   uuid.UUID `json:"cabin_id" gorm:"not null;type:uuid"`

	Row    int     `json:"row" gorm:"not null"`
	Column string  `json:"column" gorm:"not null;type:varchar(2);column:seat_column"`
	Price  float64 `json:"price" gorm:"not null;type:decimal(10,2)"`

	CreatedAt time.Time `json:"created_at"`
}

func (BookingSeat) TableName() string {
	return "booking_seats"
}

// Payment is the charge attempt recorded against a booking.
type Payment struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	BookingID uuid.UUID `json:"booking_id" gorm:"not null;type:uuid;uniqueIndex"`

	Amount        float64       `json:"amount" gorm:"not null;type:decimal(10,2)"`
	Currency      string        `json:"currency" gorm:"not null;type:varchar(3);default:'USD'"`
	Method        string        `json:"method" gorm:"not null;type:varchar(30)"`
	Status        PaymentStatus `json:"status" gorm:"not null;type:varchar(20);default:'PENDING'"`
	TransactionID string        `json:"transaction_id,omitempty" gorm:"type:varchar(64)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}
