package ai

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient generates article drafts. Web attribution comes from the
// citation metadata the model returns; no tool configuration is involved.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("ai: create gemini client: %w", err)
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.8)
	model.SetMaxOutputTokens(8192)
	return &GeminiClient{client: client, model: model}, nil
}

// Generate runs the prompt and returns the text reply plus any web sources
// the model cited while researching.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, []string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", nil, fmt.Errorf("ai: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil, nil
	}
	candidate := resp.Candidates[0]

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	var sources []string
	if candidate.CitationMetadata != nil {
		seen := make(map[string]struct{})
		for _, cs := range candidate.CitationMetadata.CitationSources {
			if cs.URI == nil || *cs.URI == "" {
				continue
			}
			if _, dup := seen[*cs.URI]; dup {
				continue
			}
			seen[*cs.URI] = struct{}{}
			sources = append(sources, *cs.URI)
		}
	}
	return sb.String(), sources, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}
