package blog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/thienvyma/tagiangecolodge/internal/domain/blog"
)

type Service struct {
	Posts blog.Repository
	Now   func() time.Time
}

func NewService(posts blog.Repository) *Service {
	return &Service{Posts: posts, Now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]*blog.Post, error) {
	return s.Posts.List(ctx)
}

func (s *Service) BySlug(ctx context.Context, slug string) (*blog.Post, error) {
	return s.Posts.BySlug(ctx, slug)
}

func (s *Service) Create(ctx context.Context, post *blog.Post) (*blog.Post, error) {
	if post.Slug == "" {
		post.Slug = blog.Slugify(post.Title)
	}
	if err := post.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.Posts.BySlug(ctx, post.Slug); err == nil {
		return nil, blog.ErrSlugTaken
	} else if !errors.Is(err, blog.ErrPostNotFound) {
		return nil, err
	}
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.PublishedAt.IsZero() {
		post.PublishedAt = s.now()
	}
	if post.ReadTime == 0 {
		post.ReadTime = blog.EstimateReadTime(post.Content)
	}
	if err := s.Posts.Save(ctx, post); err != nil {
		return nil, fmt.Errorf("blog: save post: %w", err)
	}
	return post, nil
}

func (s *Service) Update(ctx context.Context, post *blog.Post) error {
	if err := post.Validate(); err != nil {
		return err
	}
	existing, err := s.Posts.ByID(ctx, post.ID)
	if err != nil {
		return err
	}
	if existing.Slug != post.Slug {
		if _, err := s.Posts.BySlug(ctx, post.Slug); err == nil {
			return blog.ErrSlugTaken
		} else if !errors.Is(err, blog.ErrPostNotFound) {
			return err
		}
	}
	if post.ReadTime == 0 {
		post.ReadTime = blog.EstimateReadTime(post.Content)
	}
	return s.Posts.Save(ctx, post)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Posts.Delete(ctx, id)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
