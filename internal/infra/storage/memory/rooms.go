package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/thienvyma/tagiangecolodge/internal/domain/rooms"
)

// RoomRepository keeps rooms in process memory.
type RoomRepository struct {
	mu    sync.RWMutex
	items map[string]*rooms.Room
}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{items: make(map[string]*rooms.Room)}
}

func (r *RoomRepository) ByID(ctx context.Context, id string) (*rooms.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.items[id]
	if !ok {
		return nil, rooms.ErrRoomNotFound
	}
	clone := *room
	return &clone, nil
}

func (r *RoomRepository) List(ctx context.Context) ([]*rooms.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*rooms.Room, 0, len(r.items))
	for _, room := range r.items {
		clone := *room
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *RoomRepository) Save(ctx context.Context, room *rooms.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *room
	r.items[room.ID] = &clone
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return rooms.ErrRoomNotFound
	}
	delete(r.items, id)
	return nil
}
