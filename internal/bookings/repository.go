package bookings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrBookingNotFound = errors.New("booking not found")

type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByRef(ctx context.Context, ref string) (*Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status BookingStatus) error
	MarkCancelled(ctx context.Context, id uuid.UUID) error
	SavePayment(ctx context.Context, payment *Payment) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create persists the booking with its passengers, seats and payment in
// one transaction; gorm cascades the associations from the parent row.
func (r *repository) Create(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(booking).Error
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Passengers").
		Preload("Seats").
		Preload("Payment").
		First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByRef(ctx context.Context, ref string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Passengers").
		Preload("Seats").
		Preload("Payment").
		First(&booking, "booking_ref = ?", ref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, int64, error) {
	query := r.db.WithContext(ctx).Model(&Booking{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []Booking
	err := query.
		Preload("Passengers").
		Preload("Seats").
		Preload("Payment").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status BookingStatus) error {
	result := r.db.WithContext(ctx).Model(&Booking{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *repository) MarkCancelled(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&Booking{}).
		Where("id = ? AND status != ?", id, StatusCancelled).
		Updates(map[string]interface{}{
			"status":       StatusCancelled,
			"cancelled_at": &now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *repository) SavePayment(ctx context.Context, payment *Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}
