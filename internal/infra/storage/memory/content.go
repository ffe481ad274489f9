package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/thienvyma/tagiangecolodge/internal/domain/content"
)

// ContentRepository keeps site content sections in process memory with
// optimistic version checks.
type ContentRepository struct {
	mu       sync.RWMutex
	sections map[content.SectionName]*content.Section
}

func NewContentRepository() *ContentRepository {
	return &ContentRepository{sections: make(map[content.SectionName]*content.Section)}
}

func (r *ContentRepository) Get(ctx context.Context, name content.SectionName) (*content.Section, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sections[name]
	if !ok {
		return nil, content.ErrSectionNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *ContentRepository) All(ctx context.Context) ([]*content.Section, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*content.Section, 0, len(r.sections))
	for _, s := range r.sections {
		clone := *s
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Save applies the update only when the stored version still matches the
// caller's, then bumps it. A section seen for the first time requires version 0.
func (r *ContentRepository) Save(ctx context.Context, s *content.Section) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, exists := r.sections[s.Name]
	if exists && stored.Version != s.Version {
		return content.ErrVersionConflict
	}
	if !exists && s.Version != 0 {
		return content.ErrVersionConflict
	}
	clone := *s
	clone.Version = s.Version + 1
	r.sections[s.Name] = &clone
	s.Version = clone.Version
	return nil
}
