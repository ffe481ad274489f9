package gallery

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrItemNotFound = errors.New("gallery: item not found")
	ErrSrcRequired  = errors.New("gallery: image source is required")
	ErrAltRequired  = errors.New("gallery: alt text is required")
)

// Item is one image in the public gallery grid.
type Item struct {
	ID       string
	Src      string
	Alt      string
	Category string
	Position int
}

type Repository interface {
	List(ctx context.Context) ([]*Item, error)
	Save(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id string) error
	// Reorder persists the display order given a full list of item ids.
	Reorder(ctx context.Context, ids []string) error
}

func (i *Item) Validate() error {
	if strings.TrimSpace(i.Src) == "" {
		return ErrSrcRequired
	}
	if strings.TrimSpace(i.Alt) == "" {
		return ErrAltRequired
	}
	return nil
}
