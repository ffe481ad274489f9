package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/thienvyma/tagiangecolodge/internal/domain/blog"
)

// BlogRepository keeps posts in process memory.
type BlogRepository struct {
	mu    sync.RWMutex
	items map[string]*blog.Post
}

func NewBlogRepository() *BlogRepository {
	return &BlogRepository{items: make(map[string]*blog.Post)}
}

func (r *BlogRepository) ByID(ctx context.Context, id string) (*blog.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	post, ok := r.items[id]
	if !ok {
		return nil, blog.ErrPostNotFound
	}
	clone := *post
	return &clone, nil
}

func (r *BlogRepository) BySlug(ctx context.Context, slug string) (*blog.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, post := range r.items {
		if post.Slug == slug {
			clone := *post
			return &clone, nil
		}
	}
	return nil, blog.ErrPostNotFound
}

func (r *BlogRepository) List(ctx context.Context) ([]*blog.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*blog.Post, 0, len(r.items))
	for _, post := range r.items {
		clone := *post
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out, nil
}

func (r *BlogRepository) Save(ctx context.Context, post *blog.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *post
	r.items[post.ID] = &clone
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return blog.ErrPostNotFound
	}
	delete(r.items, id)
	return nil
}
