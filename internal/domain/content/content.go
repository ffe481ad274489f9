package content

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrUnknownSection  = errors.New("content: unknown section")
	ErrSectionNotFound = errors.New("content: section not found")
	ErrVersionConflict = errors.New("content: section was modified concurrently")
	ErrEmptyPayload    = errors.New("content: payload is required")
	ErrInvalidPayload  = errors.New("content: payload is not valid JSON")
)

// SectionName identifies one independently editable slice of the landing
// page. Each section persists on its own so two admin sessions editing
// different sections never overwrite each other.
type SectionName string

const (
	SectionHero         SectionName = "hero"
	SectionAbout        SectionName = "about"
	SectionAmenities    SectionName = "amenities"
	SectionTestimonials SectionName = "testimonials"
	SectionFloatingCTA  SectionName = "floating_cta"
	SectionFooter       SectionName = "footer"
	SectionSettings     SectionName = "settings"
	SectionTracking     SectionName = "tracking"
)

var knownSections = map[SectionName]bool{
	SectionHero:         true,
	SectionAbout:        true,
	SectionAmenities:    true,
	SectionTestimonials: true,
	SectionFloatingCTA:  true,
	SectionFooter:       true,
	SectionSettings:     true,
	SectionTracking:     true,
}

func ValidSection(name SectionName) bool { return knownSections[name] }

// Section is one versioned content document. Payload stays raw JSON at this
// layer; the typed shapes below document the editor contracts.
type Section struct {
	Name      SectionName
	Payload   json.RawMessage
	Version   int64
	UpdatedAt time.Time
}

type Repository interface {
	Get(ctx context.Context, name SectionName) (*Section, error)
	All(ctx context.Context) ([]*Section, error)
	// Save persists the section if the stored version still matches
	// s.Version, then bumps it; otherwise ErrVersionConflict.
	Save(ctx context.Context, s *Section) error
}

type Hero struct {
	Badge        string `json:"badge"`
	Title        string `json:"title"`
	TitleItalic  string `json:"title_italic"`
	Subtitle     string `json:"subtitle"`
	BgImage      string `json:"bg_image"`
	CTAPrimary   string `json:"cta_primary"`
	CTASecondary string `json:"cta_secondary"`
}

type About struct {
	Badge         string      `json:"badge"`
	Heading       string      `json:"heading"`
	HeadingItalic string      `json:"heading_italic"`
	Body1         string      `json:"body1"`
	Body2         string      `json:"body2"`
	Image1        string      `json:"image1"`
	Image2        string      `json:"image2"`
	BadgeNumber   string      `json:"badge_number"`
	BadgeLabel    string      `json:"badge_label"`
	Stats         []AboutStat `json:"stats"`
}

type AboutStat struct {
	Num   string `json:"num"`
	Label string `json:"label"`
}

type Amenity struct {
	ID    string `json:"id"`
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

type Testimonial struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Rating   int    `json:"rating"`
	Text     string `json:"text"`
	Avatar   string `json:"avatar"`
}

type FloatingCTAButton struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Icon    string `json:"icon"`
	Type    string `json:"type"`
	Value   string `json:"value"`
	Color   string `json:"color"`
	Enabled bool   `json:"enabled"`
}

type FloatingCTA struct {
	Enabled         bool                `json:"enabled"`
	ShowAfterScroll int                 `json:"show_after_scroll"`
	Buttons         []FloatingCTAButton `json:"buttons"`
}

type Footer struct {
	Description string            `json:"description"`
	Address     string            `json:"address"`
	Phone       string            `json:"phone"`
	Email       string            `json:"email"`
	Socials     map[string]string `json:"socials"`
}

type Settings struct {
	Name      string `json:"name"`
	Tagline   string `json:"tagline"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	MapURL    string `json:"map_url"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
}

type Tracking struct {
	GAID           string `json:"ga_id"`
	GTMID          string `json:"gtm_id"`
	GAdsID         string `json:"gads_id"`
	FBPixelID      string `json:"fb_pixel_id"`
	TikTokPixelID  string `json:"tiktok_pixel_id"`
	CustomHeadCode string `json:"custom_head_code"`
}
