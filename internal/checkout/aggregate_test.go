package checkout

import (
	"testing"

	"skybook/internal/seats"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func testPassenger(first string) Passenger {
	return Passenger{
		FirstName:   first,
		LastName:    "Tester",
		Gender:      "F",
		Email:       first + "@example.com",
		CountryCode: "+62",
		Phone:       "81234567890",
	}
}

func TestApplyUpdateLeavesUnspecifiedFieldsAlone(t *testing.T) {
	outbound := &FlightRef{FlightID: uuid.New(), FlightNumber: "SB101", Fare: 85.0}
	agg := Aggregate{
		OutboundFlight: outbound,
		Passengers:     []Passenger{testPassenger("ava")},
		Baggage:        &BaggageSelection{Type: "CHECKED", WeightLabel: "20kg", Price: 18.0},
		Protection:     true,
		TotalPrice:     120.0,
	}

	// A baggage-only update must not clobber flights, passengers or
	// the protection flag.
	agg.ApplyUpdate(Update{
		Baggage: &BaggageSelection{Type: "CHECKED", WeightLabel: "30kg", Price: 27.0},
	})

	require.Equal(t, outbound, agg.OutboundFlight)
	require.Len(t, agg.Passengers, 1)
	require.True(t, agg.Protection)
	require.Equal(t, 120.0, agg.TotalPrice)
	require.Equal(t, "30kg", agg.Baggage.WeightLabel)
}

func TestApplyUpdateAppliesEverySuppliedField(t *testing.T) {
	var agg Aggregate

	inbound := &FlightRef{FlightID: uuid.New(), FlightNumber: "SB102", Fare: 85.0}
	total := 250.0
	agg.ApplyUpdate(Update{
		InboundFlight: inbound,
		Passengers:    []Passenger{testPassenger("ava"), testPassenger("ben")},
		Protection:    boolPtr(true),
		TotalPrice:    &total,
	})

	require.Equal(t, inbound, agg.InboundFlight)
	require.Len(t, agg.Passengers, 2)
	require.True(t, agg.Protection)
	require.Equal(t, 250.0, agg.TotalPrice)
	require.Nil(t, agg.OutboundFlight)
}

func TestApplyUpdatePassengerListIsReplacedWhole(t *testing.T) {
	agg := Aggregate{Passengers: []Passenger{testPassenger("ava"), testPassenger("ben")}}

	agg.ApplyUpdate(Update{Passengers: []Passenger{testPassenger("cara")}})

	require.Len(t, agg.Passengers, 1)
	require.Equal(t, "cara", agg.Passengers[0].FirstName)
}

func TestMergeLegSeatsKeepsOtherLeg(t *testing.T) {
	outboundCabin := uuid.New()
	inboundCabin := uuid.New()

	agg := Aggregate{SelectedSeats: []seats.Seat{
		{Row: 1, Column: "A", Status: seats.StatusSelected, Price: 12, CabinID: outboundCabin},
		{Row: 1, Column: "B", Status: seats.StatusSelected, Price: 12, CabinID: outboundCabin},
	}}

	agg.MergeLegSeats(inboundCabin, []seats.Seat{
		{Row: 5, Column: "C", Status: seats.StatusSelected, Price: 20, CabinID: inboundCabin},
	})

	require.Len(t, agg.SelectedSeats, 3)
	require.Equal(t, 44.0, agg.SeatTotal())
}

func TestMergeLegSeatsReplacesSameLeg(t *testing.T) {
	cabinID := uuid.New()
	otherCabin := uuid.New()

	agg := Aggregate{SelectedSeats: []seats.Seat{
		{Row: 1, Column: "A", Status: seats.StatusSelected, Price: 12, CabinID: cabinID},
		{Row: 2, Column: "F", Status: seats.StatusSelected, Price: 12, CabinID: otherCabin},
	}}

	replacement := []seats.Seat{
		{Row: 3, Column: "C", Status: seats.StatusSelected, Price: 20, CabinID: cabinID},
	}
	agg.MergeLegSeats(cabinID, replacement)

	want := []seats.Seat{
		{Row: 2, Column: "F", Status: seats.StatusSelected, Price: 12, CabinID: otherCabin},
		{Row: 3, Column: "C", Status: seats.StatusSelected, Price: 20, CabinID: cabinID},
	}
	if diff := cmp.Diff(want, agg.SelectedSeats); diff != "" {
		t.Errorf("unexpected seats (-want +got):\n%s", diff)
	}
}

func TestMergeLegSeatsEmptyListClearsLeg(t *testing.T) {
	cabinID := uuid.New()
	agg := Aggregate{SelectedSeats: []seats.Seat{
		{Row: 1, Column: "A", Status: seats.StatusSelected, Price: 12, CabinID: cabinID},
	}}

	agg.MergeLegSeats(cabinID, nil)

	require.Empty(t, agg.SelectedSeats)
}

func TestClearResetsAggregate(t *testing.T) {
	agg := Aggregate{
		OutboundFlight: &FlightRef{FlightID: uuid.New()},
		Passengers:     []Passenger{testPassenger("ava")},
		Protection:     true,
		TotalPrice:     99.0,
	}

	agg.Clear()

	require.Equal(t, Aggregate{}, agg)
}
