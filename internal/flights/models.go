package flights

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"skybook/internal/seats"

	"github.com/google/uuid"
)

// Flight is one directional flight with its bookable cabins.
type Flight struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Airline       string    `gorm:"not null" json:"airline"`
	FlightNumber  string    `gorm:"not null;uniqueIndex:idx_flight_number_departure" json:"flight_number"`
	Origin        string    `gorm:"type:varchar(3);not null;index" json:"origin"`
	Destination   string    `gorm:"type:varchar(3);not null;index" json:"destination"`
	DepartureTime time.Time `gorm:"not null;uniqueIndex:idx_flight_number_departure" json:"departure_time"`
	ArrivalTime   time.Time `gorm:"not null" json:"arrival_time"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	Cabins []Cabin `json:"cabins,omitempty" gorm:"foreignKey:FlightID;constraint:OnDelete:CASCADE;"`
}

// Cabin is a priced class of service on one flight leg, carrying its
// own raw seat map.
type Cabin struct {
	ID        uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FlightID  uuid.UUID   `gorm:"type:uuid;index;not null" json:"flight_id"`
	Class     string      `gorm:"type:varchar(20);not null;check:class IN ('ECONOMY', 'BUSINESS', 'FIRST')" json:"class"`
	Fare      float64     `gorm:"not null" json:"fare"`
	SeatMap   SeatMapJSON `gorm:"type:jsonb" json:"seat_map"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (Flight) TableName() string {
	return "flights"
}

func (Cabin) TableName() string {
	return "cabins"
}

// CabinByID looks up a cabin within the flight's cabin list.
func (f *Flight) CabinByID(cabinID uuid.UUID) (*Cabin, error) {
	for i := range f.Cabins {
		if f.Cabins[i].ID == cabinID {
			return &f.Cabins[i], nil
		}
	}
	return nil, seats.ErrCabinNotFound
}

// SeatMapJSON stores the raw seat entries as a JSONB column.
type SeatMapJSON []seats.RawSeat

func (m SeatMapJSON) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *SeatMapJSON) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported seat map column type %T", value)
	}
}
