package blogagent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	text    string
	sources []string
	err     error
	prompt  string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, []string, error) {
	s.prompt = prompt
	return s.text, s.sources, s.err
}

func TestGenerateParsesFencedReply(t *testing.T) {
	gen := &stubGenerator{
		text: "Here you go:\n```json\n{\"title\":\"Mùa lúa chín Hà Giang\",\"excerpt\":\"Ngắm mùa vàng\",\"content\":\"# Mùa lúa\",\"tags\":[\"hà giang\"],\"seo\":{\"metaTitle\":\"Mùa lúa\",\"metaDescription\":\"desc\",\"focusKeyword\":\"mùa lúa hà giang\"}}\n```",
		sources: []string{"https://vietnam.travel/ha-giang-mua-lua"},
	}
	svc := &Service{Generator: gen}

	draft, err := svc.Generate(context.Background(), GenerateParams{Topic: "Mùa lúa chín", Category: "du lịch"})
	require.NoError(t, err)
	assert.Equal(t, "Mùa lúa chín Hà Giang", draft.Title)
	assert.Equal(t, "mùa lúa hà giang", draft.SEO.FocusKeyword)
	assert.Equal(t, []string{"https://vietnam.travel/ha-giang-mua-lua"}, draft.Sources)
	assert.Contains(t, gen.prompt, "Chủ đề: Mùa lúa chín")
	assert.Contains(t, gen.prompt, "/rooms")
}

func TestGenerateParsesBareJSON(t *testing.T) {
	gen := &stubGenerator{text: `{"title":"T","excerpt":"E","content":"C","tags":null,"seo":{}}`}
	svc := &Service{Generator: gen}

	draft, err := svc.Generate(context.Background(), GenerateParams{Topic: "T"})
	require.NoError(t, err)
	assert.Equal(t, "T", draft.Title)
}

func TestGenerateRejectsEmptyTopic(t *testing.T) {
	svc := &Service{Generator: &stubGenerator{}}
	_, err := svc.Generate(context.Background(), GenerateParams{Topic: "  "})
	assert.ErrorIs(t, err, ErrTopicRequired)
}

func TestGenerateRejectsNonJSONReply(t *testing.T) {
	svc := &Service{Generator: &stubGenerator{text: "sorry, I cannot help with that"}}
	_, err := svc.Generate(context.Background(), GenerateParams{Topic: "T"})
	assert.ErrorIs(t, err, ErrBadReply)
}

func TestGeneratePropagatesGeneratorError(t *testing.T) {
	boom := errors.New("quota exceeded")
	svc := &Service{Generator: &stubGenerator{err: boom}}
	_, err := svc.Generate(context.Background(), GenerateParams{Topic: "T"})
	assert.ErrorIs(t, err, boom)
}

func TestGenerateCustomSystemPrompt(t *testing.T) {
	gen := &stubGenerator{text: `{"title":"T","excerpt":"","content":"","seo":{}}`}
	svc := &Service{Generator: gen, SystemPrompt: "Bạn là trợ lý."}
	_, err := svc.Generate(context.Background(), GenerateParams{Topic: "T"})
	require.NoError(t, err)
	assert.Contains(t, gen.prompt, "Bạn là trợ lý.")
}
