package flights

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrFlightNotFound = errors.New("flight not found")

// ListQuery carries the supported list filters.
type ListQuery struct {
	Origin      string
	Destination string
	Date        *time.Time
	Limit       int
	Offset      int
}

type Repository interface {
	List(ctx context.Context, query ListQuery) ([]Flight, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Flight, error)
	Create(ctx context.Context, flight *Flight) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]Flight, int64, error) {
	tx := r.db.WithContext(ctx).Model(&Flight{})

	if query.Origin != "" {
		tx = tx.Where("origin = ?", query.Origin)
	}
	if query.Destination != "" {
		tx = tx.Where("destination = ?", query.Destination)
	}
	if query.Date != nil {
		dayStart := query.Date.Truncate(24 * time.Hour)
		tx = tx.Where("departure_time >= ? AND departure_time < ?", dayStart, dayStart.Add(24*time.Hour))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var flights []Flight
	err := tx.Preload("Cabins").
		Order("departure_time ASC").
		Limit(query.Limit).
		Offset(query.Offset).
		Find(&flights).Error
	if err != nil {
		return nil, 0, err
	}

	return flights, total, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Flight, error) {
	var flight Flight
	err := r.db.WithContext(ctx).Preload("Cabins").First(&flight, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}
	return &flight, nil
}

func (r *repository) Create(ctx context.Context, flight *Flight) error {
	return r.db.WithContext(ctx).Create(flight).Error
}
