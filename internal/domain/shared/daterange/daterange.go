package daterange

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidRange = errors.New("daterange: checkout must be after checkin")
	ErrBadDay       = errors.New("daterange: day must be formatted YYYY-MM-DD")
)

// DayLayout is the wire format for calendar days. All days are interpreted as
// UTC midnights; the server's date policy is UTC everywhere.
const DayLayout = "2006-01-02"

// DateRange represents a half-open interval [checkIn, checkOut): the room is
// occupied on checkIn through the day before checkOut.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func New(checkIn, checkOut time.Time) (DateRange, error) {
	dr := DateRange{CheckIn: Day(checkIn), CheckOut: Day(checkOut)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

// Parse builds a range from two YYYY-MM-DD strings.
func Parse(checkIn, checkOut string) (DateRange, error) {
	ci, err := ParseDay(checkIn)
	if err != nil {
		return DateRange{}, err
	}
	co, err := ParseDay(checkOut)
	if err != nil {
		return DateRange{}, err
	}
	return New(ci, co)
}

func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDay, s)
	}
	return t, nil
}

// Day truncates a timestamp to its UTC calendar day.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (dr DateRange) Validate() error {
	if dr.CheckOut.IsZero() || dr.CheckIn.IsZero() {
		return ErrInvalidRange
	}
	if !dr.CheckOut.After(dr.CheckIn) {
		return ErrInvalidRange
	}
	return nil
}

// Nights counts elapsed calendar days, never less than one.
func (dr DateRange) Nights() int {
	n := int(dr.CheckOut.Sub(dr.CheckIn).Hours() / 24)
	if n < 1 {
		return 1
	}
	return n
}

// Overlaps reports whether two half-open intervals share at least one day.
// Back-to-back stays (checkout == next checkin) do not overlap.
func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(dr.CheckOut)
}

func (dr DateRange) ContainsDate(t time.Time) bool {
	t = Day(t)
	return (t.Equal(dr.CheckIn) || t.After(dr.CheckIn)) && t.Before(dr.CheckOut)
}

func (dr DateRange) CheckInDay() string  { return dr.CheckIn.Format(DayLayout) }
func (dr DateRange) CheckOutDay() string { return dr.CheckOut.Format(DayLayout) }
