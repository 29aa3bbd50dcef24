package checkout

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Step identifies one of the four checkout screens. Steps are ordered
// but every step may be revisited by an index-addressed jump.
type Step int

const (
	StepPassenger Step = iota
	StepBaggage
	StepSeat
	StepPayment
)

var stepNames = map[Step]string{
	StepPassenger: "passenger",
	StepBaggage:   "baggage",
	StepSeat:      "seat",
	StepPayment:   "payment",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Valid reports whether s is a known step.
func (s Step) Valid() bool {
	_, ok := stepNames[s]
	return ok
}

// ParseStep resolves a wire name to a step.
func ParseStep(name string) (Step, error) {
	for step, n := range stepNames {
		if n == name {
			return step, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStep, name)
}

var (
	ErrUnknownStep      = errors.New("unknown checkout step")
	ErrInvalidPassenger = errors.New("passenger is missing required fields")
)

// StepData is the client-contributed portion of a forward jump: only
// what the passenger and baggage screens collect. Flight refs, seat
// selections and the running total are resolved server-side through
// SelectFlight and ConfirmSeats and never travel through a jump.
type StepData struct {
	Passengers     []Passenger       `json:"passengers,omitempty"`
	Baggage        *BaggageSelection `json:"baggage,omitempty"`
	Protection     *bool             `json:"protection,omitempty"`
	SearchCriteria *SearchCriteria   `json:"search_criteria,omitempty"`
}

func (d StepData) asUpdate() Update {
	return Update{
		Passengers:     d.Passengers,
		Baggage:        d.Baggage,
		Protection:     d.Protection,
		SearchCriteria: d.SearchCriteria,
	}
}

// FlowController enforces the step policy: jumping backward triggers no
// validation, jumping forward commits the in-progress data to the
// aggregate first and recomputes the running total. There is no hard
// gate before the payment step; validation is advisory except for the
// passenger required-field check on forward commits.
type FlowController struct {
	protectionFee float64
	validate      *validator.Validate
}

func NewFlowController(protectionFee float64) *FlowController {
	return &FlowController{
		protectionFee: protectionFee,
		validate:      validator.New(),
	}
}

// Jump moves the session to target. For forward jumps the in-progress
// step data (may be nil) is committed to the aggregate before
// navigating.
func (f *FlowController) Jump(sess *Session, target Step, inProgress *StepData) error {
	if !target.Valid() {
		return ErrUnknownStep
	}

	if target <= sess.Current {
		sess.Current = target
		return nil
	}

	// Save-then-advance
	if inProgress != nil {
		if inProgress.Passengers != nil {
			for _, p := range inProgress.Passengers {
				if err := f.validate.Struct(p); err != nil {
					return fmt.Errorf("%w: %v", ErrInvalidPassenger, err)
				}
			}
		}
		sess.Aggregate.ApplyUpdate(inProgress.asUpdate())
	}

	f.RecomputeTotal(&sess.Aggregate)
	sess.Current = target
	return nil
}

// RecomputeTotal derives the running total from every price-relevant
// field and writes it back through ApplyUpdate.
func (f *FlowController) RecomputeTotal(a *Aggregate) {
	var total float64

	if a.OutboundFlight != nil {
		total += a.OutboundFlight.Fare
	}
	if a.InboundFlight != nil {
		total += a.InboundFlight.Fare
	}
	total += a.SeatTotal()
	if a.Baggage != nil {
		total += a.Baggage.Price
	}
	if a.Protection {
		total += f.protectionFee
	}

	a.ApplyUpdate(Update{TotalPrice: &total})
}
