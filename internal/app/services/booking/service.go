package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thienvyma/tagiangecolodge/internal/domain/availability"
	domainbooking "github.com/thienvyma/tagiangecolodge/internal/domain/booking"
	"github.com/thienvyma/tagiangecolodge/internal/domain/rooms"
	"github.com/thienvyma/tagiangecolodge/internal/domain/shared/daterange"
)

var (
	ErrDatesUnavailable = errors.New("booking: dates no longer available")
	ErrCheckInInPast    = errors.New("booking: check-in date is in the past")
)

// EventPublisher pushes booking lifecycle events to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload []byte, headers map[string]string) error
}

// Notifier delivers the new-booking summary to the operator. Best effort: a
// failed notification never fails the booking.
type Notifier interface {
	NotifyBookingRequested(ctx context.Context, b *domainbooking.Booking) error
}

type Service struct {
	Bookings  domainbooking.Repository
	Rooms     rooms.Repository
	Publisher EventPublisher
	Notifier  Notifier
	Topic     string
	Logger    *slog.Logger
	Now       func() time.Time
}

type SubmitParams struct {
	GuestName string
	Email     string
	Phone     string
	RoomID    string
	CheckIn   string
	CheckOut  string
	Guests    int
	Note      string
}

type Receipt struct {
	BookingID  string
	TotalPrice int64
	Nights     int
}

// Submit validates the candidate, re-checks conflicts against a freshly
// fetched confirmed set (client-side availability is advisory only), quotes
// the price and persists the booking as pending. Identical resubmissions are
// not deduplicated: duplicate pendings are cheap and the admin reviews them.
func (s *Service) Submit(ctx context.Context, params SubmitParams) (*Receipt, error) {
	if strings.TrimSpace(params.GuestName) == "" ||
		strings.TrimSpace(params.Phone) == "" ||
		strings.TrimSpace(params.RoomID) == "" ||
		strings.TrimSpace(params.CheckIn) == "" ||
		strings.TrimSpace(params.CheckOut) == "" {
		return nil, domainbooking.ErrMissingField
	}

	dr, err := daterange.Parse(params.CheckIn, params.CheckOut)
	if err != nil {
		return nil, err
	}
	now := s.now()
	today := daterange.Day(now)
	if dr.CheckIn.Before(today) {
		return nil, ErrCheckInInPast
	}

	room, err := s.Rooms.ByID(ctx, params.RoomID)
	if err != nil {
		return nil, err
	}

	booked, err := s.Bookings.ConfirmedRanges(ctx, room.ID, today)
	if err != nil {
		return nil, fmt.Errorf("booking: conflict check: %w", err)
	}
	if availability.Conflicts(dr, booked) {
		return nil, ErrDatesUnavailable
	}

	guests := params.Guests
	if guests <= 0 {
		guests = 1
	}
	b, err := domainbooking.NewBooking(domainbooking.CreateParams{
		ID:          newBookingID(now),
		GuestName:   params.GuestName,
		Email:       params.Email,
		Phone:       params.Phone,
		RoomID:      room.ID,
		RoomName:    room.Name,
		Range:       dr,
		Guests:      guests,
		Note:        params.Note,
		NightlyRate: room.NightlyRate,
		CreatedAt:   now,
	})
	if err != nil {
		return nil, err
	}
	if err := s.Bookings.Save(ctx, b); err != nil {
		return nil, fmt.Errorf("booking: save: %w", err)
	}

	s.publishRequested(ctx, b)
	if s.Notifier != nil {
		go func(b *domainbooking.Booking) {
			nctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := s.Notifier.NotifyBookingRequested(nctx, b); err != nil && s.Logger != nil {
				s.Logger.Warn("booking notification failed", "booking_id", b.ID, "error", err)
			}
		}(b)
	}

	return &Receipt{BookingID: b.ID, TotalPrice: b.TotalPrice, Nights: dr.Nights()}, nil
}

func (s *Service) List(ctx context.Context) ([]*domainbooking.Booking, error) {
	return s.Bookings.List(ctx)
}

// Confirm transitions a pending booking to confirmed, which publishes its
// range into the availability feed.
func (s *Service) Confirm(ctx context.Context, id string) (*domainbooking.Booking, error) {
	return s.transition(ctx, id, func(b *domainbooking.Booking, now time.Time) error {
		return b.Confirm(now)
	})
}

func (s *Service) Cancel(ctx context.Context, id string) (*domainbooking.Booking, error) {
	return s.transition(ctx, id, func(b *domainbooking.Booking, now time.Time) error {
		return b.Cancel(now)
	})
}

func (s *Service) transition(ctx context.Context, id string, apply func(*domainbooking.Booking, time.Time) error) (*domainbooking.Booking, error) {
	b, err := s.Bookings.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(b, s.now()); err != nil {
		return nil, err
	}
	if err := s.Bookings.Save(ctx, b); err != nil {
		return nil, fmt.Errorf("booking: save: %w", err)
	}
	return b, nil
}

type requestedEvent struct {
	BookingID  string `json:"booking_id"`
	RoomID     string `json:"room_id"`
	RoomName   string `json:"room_name"`
	GuestName  string `json:"guest_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email,omitempty"`
	CheckIn    string `json:"checkin"`
	CheckOut   string `json:"checkout"`
	Guests     int    `json:"guests"`
	Note       string `json:"note,omitempty"`
	TotalPrice int64  `json:"total_price"`
	CreatedAt  string `json:"created_at"`
}

func (s *Service) publishRequested(ctx context.Context, b *domainbooking.Booking) {
	if s.Publisher == nil {
		return
	}
	payload, err := json.Marshal(requestedEvent{
		BookingID:  b.ID,
		RoomID:     b.RoomID,
		RoomName:   b.RoomName,
		GuestName:  b.GuestName,
		Phone:      b.Phone,
		Email:      b.Email,
		CheckIn:    b.Range.CheckInDay(),
		CheckOut:   b.Range.CheckOutDay(),
		Guests:     b.Guests,
		Note:       b.Note,
		TotalPrice: b.TotalPrice,
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	topic := s.Topic
	if topic == "" {
		topic = "booking.requested"
	}
	if err := s.Publisher.Publish(ctx, topic, b.ID, payload, map[string]string{"event": "booking.requested"}); err != nil && s.Logger != nil {
		s.Logger.Warn("booking event publish failed", "booking_id", b.ID, "error", err)
	}
}

// newBookingID keeps the operator-facing BK<millis> shape with a short random
// suffix so concurrent submissions in the same millisecond cannot collide.
func newBookingID(now time.Time) string {
	return fmt.Sprintf("BK%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
