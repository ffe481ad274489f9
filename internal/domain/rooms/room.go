package rooms

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrRoomNotFound = errors.New("rooms: room not found")
	ErrNameRequired = errors.New("rooms: name is required")
	ErrInvalidRate  = errors.New("rooms: nightly rate must be positive")
)

// Room is a bookable unit shown on the landing page.
type Room struct {
	ID          string
	Name        string
	Type        string
	NightlyRate int64
	Capacity    int
	SizeSqm     int
	Image       string
	Amenities   []string
	Description string
	Available   bool
	Version     int64
}

type Repository interface {
	ByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context) ([]*Room, error)
	Save(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id string) error
}

func (r *Room) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	if r.NightlyRate <= 0 {
		return ErrInvalidRate
	}
	return nil
}
