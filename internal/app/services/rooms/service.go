package rooms

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/thienvyma/tagiangecolodge/internal/domain/rooms"
)

type Service struct {
	Rooms rooms.Repository
}

func NewService(repo rooms.Repository) *Service {
	return &Service{Rooms: repo}
}

func (s *Service) List(ctx context.Context) ([]*rooms.Room, error) {
	return s.Rooms.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*rooms.Room, error) {
	return s.Rooms.ByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, room *rooms.Room) (*rooms.Room, error) {
	if err := room.Validate(); err != nil {
		return nil, err
	}
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	if err := s.Rooms.Save(ctx, room); err != nil {
		return nil, fmt.Errorf("rooms: save: %w", err)
	}
	return room, nil
}

func (s *Service) Update(ctx context.Context, room *rooms.Room) error {
	if err := room.Validate(); err != nil {
		return err
	}
	if _, err := s.Rooms.ByID(ctx, room.ID); err != nil {
		return err
	}
	return s.Rooms.Save(ctx, room)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Rooms.Delete(ctx, id)
}
