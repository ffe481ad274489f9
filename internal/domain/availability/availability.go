package availability

import (
	"time"

	"github.com/thienvyma/tagiangecolodge/internal/domain/shared/daterange"
)

// Conflicts reports whether the candidate range overlaps any booked range.
// This is the single conflict rule for the whole system: the calendar uses it
// for feedback, the submission handler re-runs it against a fresh fetch.
func Conflicts(candidate daterange.DateRange, booked []daterange.DateRange) bool {
	for _, r := range booked {
		if candidate.Overlaps(r) {
			return true
		}
	}
	return false
}

func isBooked(day time.Time, booked []daterange.DateRange) bool {
	for _, r := range booked {
		if r.ContainsDate(day) {
			return true
		}
	}
	return false
}

// DayStatus classifies a calendar day for rendering. Presentation only; the
// selection transitions never read it.
type DayStatus string

const (
	DayPast     DayStatus = "past"
	DayBooked   DayStatus = "booked"
	DayEndpoint DayStatus = "selected-endpoint"
	DayInRange  DayStatus = "in-range"
	DayPlain    DayStatus = "plain"
)

// ClassifyDay tags a day given today's date, the booked set and the current
// selection endpoints (either may be zero).
func ClassifyDay(day, today time.Time, booked []daterange.DateRange, checkIn, checkOut time.Time) DayStatus {
	day = daterange.Day(day)
	switch {
	case day.Before(daterange.Day(today)):
		return DayPast
	case isBooked(day, booked):
		return DayBooked
	case !checkIn.IsZero() && day.Equal(daterange.Day(checkIn)),
		!checkOut.IsZero() && day.Equal(daterange.Day(checkOut)):
		return DayEndpoint
	case !checkIn.IsZero() && !checkOut.IsZero() &&
		day.After(daterange.Day(checkIn)) && day.Before(daterange.Day(checkOut)):
		return DayInRange
	default:
		return DayPlain
	}
}

// MonthGrid lists the calendar days of one month, for lazily materializing
// additional months as the visitor scrolls. Append-only; callers cap how many
// months they ever request.
func MonthGrid(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := make([]time.Time, 0, 31)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
