package blogagent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrTopicRequired = errors.New("blogagent: topic is required")
	ErrEmptyReply    = errors.New("blogagent: model returned no content")
	ErrBadReply      = errors.New("blogagent: model reply is not valid JSON")
)

// Generator produces text for a prompt and reports the web sources the
// model cited while writing.
type Generator interface {
	Generate(ctx context.Context, prompt string) (text string, sources []string, err error)
}

type deeplink struct {
	Label string
	URL   string
}

// Internal pages the model is asked to weave into the article.
var deeplinks = []deeplink{
	{"Trang phòng nghỉ", "/rooms"},
	{"Đặt phòng / Liên hệ", "/#contact"},
	{"Tiện ích", "/#amenities"},
	{"Thư viện ảnh", "/#gallery"},
	{"Giới thiệu", "/#about"},
	{"Blog du lịch", "/blog"},
}

const defaultSystemPrompt = `Bạn là chuyên gia viết nội dung SEO cho homestay Tà Giang Ecolog tại Hà Giang, Việt Nam.
Khi viết bài, hãy:
- Research thông tin thực tế, cập nhật nhất về chủ đề
- Tối ưu SEO tự nhiên với từ khóa liên quan đến du lịch Hà Giang, homestay sinh thái
- Viết giọng văn thân thiện, truyền cảm hứng du lịch
- Cấu trúc bài: H1 > H2 > H3, có intro, body, CTA cuối bài
- Độ dài 800-1500 từ
- Luôn đề cập Tà Giang Ecolog tự nhiên trong bài`

type Service struct {
	Generator    Generator
	SystemPrompt string
}

type GenerateParams struct {
	Topic    string
	Category string
	Extra    string
}

// Draft is the structured article the model returns.
type Draft struct {
	Title   string   `json:"title"`
	Excerpt string   `json:"excerpt"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	SEO     struct {
		MetaTitle       string `json:"metaTitle"`
		MetaDescription string `json:"metaDescription"`
		FocusKeyword    string `json:"focusKeyword"`
	} `json:"seo"`
	Sources []string `json:"sources,omitempty"`
}

func (s *Service) Generate(ctx context.Context, params GenerateParams) (*Draft, error) {
	if strings.TrimSpace(params.Topic) == "" {
		return nil, ErrTopicRequired
	}
	text, sources, err := s.Generator.Generate(ctx, s.buildPrompt(params))
	if err != nil {
		return nil, fmt.Errorf("blogagent: generate: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyReply
	}
	draft, err := parseDraft(text)
	if err != nil {
		return nil, err
	}
	draft.Sources = sources
	return draft, nil
}

func (s *Service) buildPrompt(params GenerateParams) string {
	system := s.SystemPrompt
	if system == "" {
		system = defaultSystemPrompt
	}
	var links strings.Builder
	for _, d := range deeplinks {
		fmt.Fprintf(&links, "- [%s](%s)\n", d.Label, d.URL)
	}
	extra := params.Extra
	if extra == "" {
		extra = "Không có"
	}
	return fmt.Sprintf(`%s

---
Chủ đề: %s
Danh mục: %s
Yêu cầu thêm: %s

Deeplinks nội bộ cần gắn tự nhiên vào bài:
%s
Hãy sử dụng Google Search để research thông tin mới nhất về chủ đề này, sau đó viết bài hoàn chỉnh.

Trả về JSON (và CHỈ JSON, không có text ngoài) với format:
{
  "title": "...",
  "excerpt": "...(tối đa 160 ký tự)",
  "content": "...(markdown, 800-1500 từ, có deeplinks tự nhiên)",
  "tags": ["tag1", "tag2", "tag3", "tag4", "tag5"],
  "seo": {
    "metaTitle": "...(50-60 ký tự)",
    "metaDescription": "...(150-160 ký tự)",
    "focusKeyword": "..."
  }
}`, system, params.Topic, params.Category, extra, links.String())
}

var (
	fencedJSON = regexp.MustCompile("```json\\s*([\\s\\S]*?)```")
	looseJSON  = regexp.MustCompile(`(\{[\s\S]*\})`)
)

// parseDraft digs the JSON object out of the model reply, tolerating a
// markdown code fence or surrounding prose.
func parseDraft(text string) (*Draft, error) {
	raw := text
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		raw = m[1]
	} else if m := looseJSON.FindStringSubmatch(text); m != nil {
		raw = m[1]
	}
	var draft Draft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadReply, err)
	}
	if strings.TrimSpace(draft.Title) == "" {
		return nil, fmt.Errorf("%w: missing title", ErrBadReply)
	}
	return &draft, nil
}
