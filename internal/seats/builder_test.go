package seats

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestBuildInventory(t *testing.T) {
	cabinID := uuid.New()

	tests := []struct {
		name    string
		entries []RawSeat
		want    []Seat
		wantErr error
	}{
		{
			name: "parses rows columns and availability",
			entries: []RawSeat{
				{SeatNumber: "1A", IsAvailable: true},
				{SeatNumber: "12F", IsAvailable: false},
			},
			want: []Seat{
				{Row: 1, Column: "A", Status: StatusAvailable, Price: 12.0, CabinID: cabinID},
				{Row: 12, Column: "F", Status: StatusUnavailable, Price: 12.0, CabinID: cabinID},
			},
		},
		{
			name: "premium columns get premium default price",
			entries: []RawSeat{
				{SeatNumber: "3C", IsAvailable: true},
				{SeatNumber: "3D", IsAvailable: true},
				{SeatNumber: "3A", IsAvailable: true},
			},
			want: []Seat{
				{Row: 3, Column: "C", Status: StatusAvailable, Price: 20.0, CabinID: cabinID},
				{Row: 3, Column: "D", Status: StatusAvailable, Price: 20.0, CabinID: cabinID},
				{Row: 3, Column: "A", Status: StatusAvailable, Price: 12.0, CabinID: cabinID},
			},
		},
		{
			name: "supplied price wins over column default",
			entries: []RawSeat{
				{SeatNumber: "4C", IsAvailable: true, Price: floatPtr(31.5)},
			},
			want: []Seat{
				{Row: 4, Column: "C", Status: StatusAvailable, Price: 31.5, CabinID: cabinID},
			},
		},
		{
			name: "malformed entries are dropped silently",
			entries: []RawSeat{
				{SeatNumber: "A1", IsAvailable: true},
				{SeatNumber: "12", IsAvailable: true},
				{SeatNumber: "3DD", IsAvailable: true},
				{SeatNumber: "", IsAvailable: true},
				{SeatNumber: "0A", IsAvailable: true},
				{SeatNumber: "7B", IsAvailable: true},
			},
			want: []Seat{
				{Row: 7, Column: "B", Status: StatusAvailable, Price: 12.0, CabinID: cabinID},
			},
		},
		{
			name:    "empty seat map is a blocking error",
			entries: nil,
			wantErr: ErrEmptySeatMap,
		},
		{
			name: "all entries malformed is a blocking error",
			entries: []RawSeat{
				{SeatNumber: "??", IsAvailable: true},
			},
			wantErr: ErrEmptySeatMap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := BuildInventory(cabinID, tt.entries)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, cabinID, inv.CabinID)
			if diff := cmp.Diff(tt.want, inv.Seats); diff != "" {
				t.Errorf("unexpected seats (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSeatAt(t *testing.T) {
	cabinID := uuid.New()
	inv, err := BuildInventory(cabinID, []RawSeat{
		{SeatNumber: "1A", IsAvailable: true},
		{SeatNumber: "2B", IsAvailable: true},
	})
	require.NoError(t, err)

	require.NotNil(t, inv.SeatAt(2, "B"))
	require.Nil(t, inv.SeatAt(2, "A"))
	require.Nil(t, inv.SeatAt(99, "Z"))
}
