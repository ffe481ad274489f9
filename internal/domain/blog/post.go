package blog

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrPostNotFound  = errors.New("blog: post not found")
	ErrSlugRequired  = errors.New("blog: slug is required")
	ErrTitleRequired = errors.New("blog: title is required")
	ErrSlugTaken     = errors.New("blog: slug already in use")
)

type SEO struct {
	MetaTitle       string
	MetaDescription string
	FocusKeyword    string
}

type Post struct {
	ID          string
	Slug        string
	Title       string
	Excerpt     string
	Content     string
	CoverImage  string
	Category    string
	Tags        []string
	Author      string
	PublishedAt time.Time
	ReadTime    int
	Featured    bool
	SEO         SEO
}

type Repository interface {
	ByID(ctx context.Context, id string) (*Post, error)
	BySlug(ctx context.Context, slug string) (*Post, error)
	// List returns posts ordered by PublishedAt descending.
	List(ctx context.Context) ([]*Post, error)
	Save(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id string) error
}

func (p *Post) Validate() error {
	if strings.TrimSpace(p.Slug) == "" {
		return ErrSlugRequired
	}
	if strings.TrimSpace(p.Title) == "" {
		return ErrTitleRequired
	}
	return nil
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a title. Accented characters fall out of
// the ASCII filter, so callers supplying Vietnamese titles should pass a
// transliterated form when they care about legibility.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// EstimateReadTime counts minutes at roughly 200 words a minute, never below
// one.
func EstimateReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + 199) / 200
	if minutes < 1 {
		return 1
	}
	return minutes
}
