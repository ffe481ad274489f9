package availability

import (
	"time"

	"github.com/thienvyma/tagiangecolodge/internal/domain/shared/daterange"
)

// Phase says which endpoint the next valid click will set.
type Phase string

const (
	PickingStart Phase = "picking_start"
	PickingEnd   Phase = "picking_end"
)

// Selection turns a sequence of day clicks into a committed (checkIn,
// checkOut) pair. It holds no I/O and has no failure states: a click either
// causes a transition or is ignored.
type Selection struct {
	CheckIn  time.Time
	CheckOut time.Time
	Phase    Phase
}

// NewSelection starts an empty two-phase selection.
func NewSelection() Selection {
	return Selection{Phase: PickingStart}
}

// RestoreSelection resumes with a previously chosen check-in, e.g. from a
// saved draft, so the next click picks the checkout.
func RestoreSelection(checkIn time.Time) Selection {
	if checkIn.IsZero() {
		return NewSelection()
	}
	return Selection{CheckIn: daterange.Day(checkIn), Phase: PickingEnd}
}

// Click feeds one day-cell activation into the state machine and returns the
// next state. Past and booked days never change state. A click that cannot
// extend the in-progress range re-anchors: the clicked day becomes the new
// check-in and the checkout is cleared.
func (s Selection) Click(day, today time.Time, booked []daterange.DateRange) Selection {
	day = daterange.Day(day)
	if day.Before(daterange.Day(today)) || isBooked(day, booked) {
		return s
	}

	if s.Phase == PickingStart {
		return Selection{CheckIn: day, Phase: PickingEnd}
	}

	// PickingEnd: a click at or before the anchor restarts the range there.
	if !day.After(s.CheckIn) {
		return Selection{CheckIn: day, Phase: PickingEnd}
	}

	// The intended stay crosses an occupied block, so the latest click is
	// reinterpreted as a fresh start rather than accepted as an endpoint.
	candidate := daterange.DateRange{CheckIn: s.CheckIn, CheckOut: day}
	if Conflicts(candidate, booked) {
		return Selection{CheckIn: day, Phase: PickingEnd}
	}

	return Selection{CheckIn: s.CheckIn, CheckOut: day, Phase: PickingStart}
}

// Complete reports whether both endpoints are committed.
func (s Selection) Complete() bool {
	return !s.CheckIn.IsZero() && !s.CheckOut.IsZero()
}

// Range returns the committed range; valid only when Complete.
func (s Selection) Range() (daterange.DateRange, error) {
	return daterange.New(s.CheckIn, s.CheckOut)
}
