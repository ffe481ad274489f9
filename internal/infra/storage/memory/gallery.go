package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/thienvyma/tagiangecolodge/internal/domain/gallery"
)

// GalleryRepository keeps gallery items in process memory, ordered by position.
type GalleryRepository struct {
	mu    sync.RWMutex
	items map[string]*gallery.Item
}

func NewGalleryRepository() *GalleryRepository {
	return &GalleryRepository{items: make(map[string]*gallery.Item)}
}

func (r *GalleryRepository) List(ctx context.Context) ([]*gallery.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*gallery.Item, 0, len(r.items))
	for _, item := range r.items {
		clone := *item
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *GalleryRepository) Save(ctx context.Context, item *gallery.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *item
	if _, exists := r.items[item.ID]; !exists && clone.Position == 0 {
		clone.Position = len(r.items)
	}
	r.items[item.ID] = &clone
	return nil
}

func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return gallery.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

// Reorder rewrites positions to match the supplied id order. Ids not present
// are ignored; items missing from the list keep their position tail-end.
func (r *GalleryRepository) Reorder(ctx context.Context, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	pos := 0
	for _, id := range ids {
		item, ok := r.items[id]
		if !ok {
			continue
		}
		item.Position = pos
		pos++
	}
	return nil
}
