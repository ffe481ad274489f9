package availability

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thienvyma/tagiangecolodge/internal/domain/booking"
	"github.com/thienvyma/tagiangecolodge/internal/domain/shared/daterange"
)

var ErrRoomIDRequired = errors.New("availability: room id is required")

// Service answers "which dates are already taken" for a room. Read-only; the
// result is a point-in-time snapshot and the booking service re-checks on
// submission.
type Service struct {
	Bookings booking.Repository
	Now      func() time.Time
}

func NewService(bookings booking.Repository) *Service {
	return &Service{Bookings: bookings, Now: time.Now}
}

// BookedRanges returns the confirmed ranges for a room whose checkout has not
// yet elapsed. Fully past stays can never conflict with a new booking, so the
// client never sees them.
func (s *Service) BookedRanges(ctx context.Context, roomID string) ([]daterange.DateRange, error) {
	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return nil, ErrRoomIDRequired
	}
	today := daterange.Day(s.now())
	ranges, err := s.Bookings.ConfirmedRanges(ctx, roomID, today)
	if err != nil {
		return nil, fmt.Errorf("availability: fetch booked ranges: %w", err)
	}
	return ranges, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
