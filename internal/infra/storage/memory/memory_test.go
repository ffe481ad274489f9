package memory

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thienvyma/tagiangecolodge/internal/domain/booking"
	"github.com/thienvyma/tagiangecolodge/internal/domain/content"
	"github.com/thienvyma/tagiangecolodge/internal/domain/gallery"
	"github.com/thienvyma/tagiangecolodge/internal/domain/shared/daterange"
)

func mustRange(t *testing.T, checkin, checkout string) daterange.DateRange {
	t.Helper()
	r, err := daterange.Parse(checkin, checkout)
	require.NoError(t, err)
	return r
}

func storedBooking(t *testing.T, id, roomID string, status booking.Status, checkin, checkout string) *booking.Booking {
	t.Helper()
	return &booking.Booking{
		ID:     id,
		RoomID: roomID,
		Status: status,
		Range:  mustRange(t, checkin, checkout),
	}
}

func TestConfirmedRangesFiltersByRoomStatusAndDate(t *testing.T) {
	repo := NewBookingRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, storedBooking(t, "b1", "family", booking.StatusConfirmed, "2024-06-10", "2024-06-12")))
	require.NoError(t, repo.Save(ctx, storedBooking(t, "b2", "family", booking.StatusPending, "2024-06-14", "2024-06-16")))
	require.NoError(t, repo.Save(ctx, storedBooking(t, "b3", "dorm", booking.StatusConfirmed, "2024-06-10", "2024-06-12")))
	// Fully in the past relative to the query day.
	require.NoError(t, repo.Save(ctx, storedBooking(t, "b4", "family", booking.StatusConfirmed, "2024-05-01", "2024-05-03")))
	// Checkout exactly on the query day still counts.
	require.NoError(t, repo.Save(ctx, storedBooking(t, "b5", "family", booking.StatusConfirmed, "2024-05-30", "2024-06-01")))

	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	ranges, err := repo.ConfirmedRanges(ctx, "family", from)
	require.NoError(t, err)

	require.Len(t, ranges, 2)
	assert.Equal(t, "2024-05-30", ranges[0].CheckInDay())
	assert.Equal(t, "2024-06-10", ranges[1].CheckInDay())
}

func TestBookingListNewestFirst(t *testing.T) {
	repo := NewBookingRepository()
	ctx := context.Background()

	older := storedBooking(t, "b1", "family", booking.StatusPending, "2024-06-10", "2024-06-12")
	older.CreatedAt = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	newer := storedBooking(t, "b2", "family", booking.StatusPending, "2024-06-14", "2024-06-16")
	newer.CreatedAt = time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b2", list[0].ID)
}

func TestBookingSaveIsolatesCallerMutations(t *testing.T) {
	repo := NewBookingRepository()
	ctx := context.Background()

	b := storedBooking(t, "b1", "family", booking.StatusPending, "2024-06-10", "2024-06-12")
	require.NoError(t, repo.Save(ctx, b))
	b.Status = booking.StatusCancelled

	stored, err := repo.ByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, booking.StatusPending, stored.Status)
}

func TestContentSaveVersionConflict(t *testing.T) {
	repo := NewContentRepository()
	ctx := context.Background()

	first := &content.Section{Name: content.SectionHero, Payload: json.RawMessage(`{"title":"a"}`), Version: 0}
	require.NoError(t, repo.Save(ctx, first))
	assert.Equal(t, int64(1), first.Version)

	stale := &content.Section{Name: content.SectionHero, Payload: json.RawMessage(`{"title":"b"}`), Version: 0}
	assert.ErrorIs(t, repo.Save(ctx, stale), content.ErrVersionConflict)

	current := &content.Section{Name: content.SectionHero, Payload: json.RawMessage(`{"title":"c"}`), Version: 1}
	require.NoError(t, repo.Save(ctx, current))
	assert.Equal(t, int64(2), current.Version)
}

func TestGalleryReorder(t *testing.T) {
	repo := NewGalleryRepository()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Save(ctx, &gallery.Item{ID: id, Src: "/" + id, Alt: id}))
	}
	require.NoError(t, repo.Reorder(ctx, []string{"c", "a", "b"}))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "c", items[0].ID)
	assert.Equal(t, "a", items[1].ID)
	assert.Equal(t, "b", items[2].ID)
}
