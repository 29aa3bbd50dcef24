package seats

import (
	"errors"
	"regexp"
	"strconv"

	"github.com/google/uuid"
)

var (
	ErrCabinNotFound = errors.New("cabin not found on flight")
	ErrEmptySeatMap  = errors.New("cabin has no seat map")
)

// seatNumberPattern matches "<row digits><single column letter>", e.g. "12C".
var seatNumberPattern = regexp.MustCompile(`^(\d+)([A-Z])$`)

// Default prices applied when an inventory entry carries none. The two
// aisle-adjacent columns are priced as premium.
const (
	defaultSeatPrice = 12.0
	premiumSeatPrice = 20.0
)

var premiumColumns = map[string]bool{"C": true, "D": true}

// BuildInventory turns raw seat-map entries into a typed SeatInventory
// for one cabin. Entries whose seat number does not parse are dropped,
// not reported: a malformed entry must not take the seat map down with
// it. An inventory that ends up empty is a blocking error because the
// caller has nothing to render.
func BuildInventory(cabinID uuid.UUID, entries []RawSeat) (*SeatInventory, error) {
	inv := &SeatInventory{CabinID: cabinID}

	for _, entry := range entries {
		m := seatNumberPattern.FindStringSubmatch(entry.SeatNumber)
		if m == nil {
			continue
		}

		row, err := strconv.Atoi(m[1])
		if err != nil || row < 1 {
			continue
		}

		status := StatusAvailable
		if !entry.IsAvailable {
			status = StatusUnavailable
		}

		inv.Seats = append(inv.Seats, Seat{
			Row:     row,
			Column:  m[2],
			Status:  status,
			Price:   seatPrice(entry.Price, m[2]),
			CabinID: cabinID,
		})
	}

	if len(inv.Seats) == 0 {
		return nil, ErrEmptySeatMap
	}

	return inv, nil
}

// seatPrice resolves the effective seat price: the supplied price wins,
// otherwise the column decides between premium and standard defaults.
func seatPrice(supplied *float64, column string) float64 {
	if supplied != nil {
		return *supplied
	}
	if premiumColumns[column] {
		return premiumSeatPrice
	}
	return defaultSeatPrice
}
