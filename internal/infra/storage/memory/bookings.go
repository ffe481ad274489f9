package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/thienvyma/tagiangecolodge/internal/domain/booking"
	"github.com/thienvyma/tagiangecolodge/internal/domain/shared/daterange"
)

// BookingRepository is an in-memory implementation for demo and test runs.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[string]*booking.Booking
}

// NewBookingRepository builds an empty repository.
func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[string]*booking.Booking)}
}

// ByID returns a booking or booking.ErrBookingNotFound.
func (r *BookingRepository) ByID(ctx context.Context, id string) (*booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

// Save stores or updates a booking entry.
func (r *BookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *b
	r.items[b.ID] = &clone
	return nil
}

// List returns all bookings, newest first.
func (r *BookingRepository) List(ctx context.Context) ([]*booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*booking.Booking, 0, len(r.items))
	for _, b := range r.items {
		clone := *b
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// ConfirmedRanges returns date ranges of confirmed bookings for a room whose
// checkout is on or after the given day.
func (r *BookingRepository) ConfirmedRanges(ctx context.Context, roomID string, from time.Time) ([]daterange.DateRange, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []daterange.DateRange
	for _, b := range r.items {
		if b.RoomID != roomID || b.Status != booking.StatusConfirmed {
			continue
		}
		if b.Range.CheckOut.Before(from) {
			continue
		}
		out = append(out, b.Range)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CheckIn.Before(out[j].CheckIn)
	})
	return out, nil
}
