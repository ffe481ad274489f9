package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/thienvyma/tagiangecolodge/internal/domain/shared/daterange"
)

var (
	ErrMissingField    = errors.New("booking: missing required field")
	ErrInvalidGuests   = errors.New("booking: guests count must be positive")
	ErrInvalidState    = errors.New("booking: invalid state transition")
	ErrBookingNotFound = errors.New("booking: not found")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

type Booking struct {
	ID         string
	GuestName  string
	Email      string
	Phone      string
	RoomID     string
	RoomName   string
	Range      daterange.DateRange
	Guests     int
	Note       string
	TotalPrice int64
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Version    int64
}

type Repository interface {
	ByID(ctx context.Context, id string) (*Booking, error)
	Save(ctx context.Context, b *Booking) error
	List(ctx context.Context) ([]*Booking, error)
	// ConfirmedRanges returns ranges of confirmed bookings for a room whose
	// checkout has not yet elapsed relative to the given day.
	ConfirmedRanges(ctx context.Context, roomID string, from time.Time) ([]daterange.DateRange, error)
}

type CreateParams struct {
	ID        string
	GuestName string
	Email     string
	Phone     string
	RoomID    string
	RoomName  string
	Range     daterange.DateRange
	Guests    int
	Note      string
	// NightlyRate is the room's price per night in VND.
	NightlyRate int64
	CreatedAt   time.Time
}

// Quote computes the total price: nights times nightly rate, minimum one
// night.
func Quote(r daterange.DateRange, nightlyRate int64) int64 {
	return int64(r.Nights()) * nightlyRate
}

func NewBooking(params CreateParams) (*Booking, error) {
	if strings.TrimSpace(params.GuestName) == "" ||
		strings.TrimSpace(params.Phone) == "" ||
		strings.TrimSpace(params.RoomID) == "" {
		return nil, ErrMissingField
	}
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	if params.Guests <= 0 {
		return nil, ErrInvalidGuests
	}
	now := params.CreatedAt.UTC()
	return &Booking{
		ID:         params.ID,
		GuestName:  strings.TrimSpace(params.GuestName),
		Email:      strings.TrimSpace(params.Email),
		Phone:      strings.TrimSpace(params.Phone),
		RoomID:     params.RoomID,
		RoomName:   params.RoomName,
		Range:      params.Range,
		Guests:     params.Guests,
		Note:       strings.TrimSpace(params.Note),
		TotalPrice: Quote(params.Range, params.NightlyRate),
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Confirm marks a pending booking as confirmed; from then on its range is
// visible to the availability query.
func (b *Booking) Confirm(now time.Time) error {
	if b.Status != StatusPending {
		return ErrInvalidState
	}
	b.Status = StatusConfirmed
	b.UpdatedAt = now.UTC()
	return nil
}

func (b *Booking) Cancel(now time.Time) error {
	if b.Status == StatusCancelled {
		return ErrInvalidState
	}
	b.Status = StatusCancelled
	b.UpdatedAt = now.UTC()
	return nil
}
