package content

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/thienvyma/tagiangecolodge/internal/domain/content"
)

// Service mediates section reads and version-checked writes. Each landing
// section persists independently so concurrent admin edits of different
// sections cannot clobber each other.
type Service struct {
	Sections content.Repository
	Now      func() time.Time
}

func NewService(sections content.Repository) *Service {
	return &Service{Sections: sections, Now: time.Now}
}

func (s *Service) All(ctx context.Context) ([]*content.Section, error) {
	return s.Sections.All(ctx)
}

func (s *Service) Get(ctx context.Context, name content.SectionName) (*content.Section, error) {
	if !content.ValidSection(name) {
		return nil, content.ErrUnknownSection
	}
	return s.Sections.Get(ctx, name)
}

// Update replaces one section's payload if the caller's version still
// matches the stored one.
func (s *Service) Update(ctx context.Context, name content.SectionName, payload json.RawMessage, version int64) (*content.Section, error) {
	if !content.ValidSection(name) {
		return nil, content.ErrUnknownSection
	}
	if len(payload) == 0 {
		return nil, content.ErrEmptyPayload
	}
	if !json.Valid(payload) {
		return nil, fmt.Errorf("section %s: %w", name, content.ErrInvalidPayload)
	}
	section := &content.Section{
		Name:      name,
		Payload:   payload,
		Version:   version,
		UpdatedAt: s.now(),
	}
	if err := s.Sections.Save(ctx, section); err != nil {
		return nil, err
	}
	return section, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
