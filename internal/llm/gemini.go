package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	geminiDefaultModel = "gemini-2.5-flash"
	geminiName         = "gemini"
)

// GeminiProvider implements Provider using the Gemini API.
type GeminiProvider struct {
	client *genai.Client
	logger *zap.Logger
}

// NewGemini creates a Gemini provider. A non-empty baseURL overrides the
// API endpoint.
func NewGemini(ctx context.Context, apiKey, baseURL string, logger *zap.Logger) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &GeminiProvider{client: client, logger: logger}, nil
}

func (g *GeminiProvider) Name() string { return geminiName }

func (g *GeminiProvider) Generate(ctx context.Context, prompt Prompt, s Settings) (string, error) {
	model := s.Model
	if model == "" {
		model = geminiDefaultModel
	}

	maxTokens := s.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 8192
	}

	temperature := float32(s.Temperature)
	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  int32(maxTokens),
		ResponseMIMEType: "application/json",
	}
	if prompt.System != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: prompt.System}}}
	}
	if s.Seed != nil {
		seed := int32(*s.Seed)
		config.Seed = &seed
	}

	g.logger.Debug("Generating with Gemini", zap.String("model", model))

	resp, err := g.client.Models.GenerateContent(ctx, model, []*genai.Content{
		{Role: genai.RoleUser, Parts: []*genai.Part{{Text: prompt.User}}},
	}, config)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", statusError(geminiName, apiErr.Code, apiErr.Message)
		}
		return "", transportError(geminiName, err)
	}

	if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason == genai.FinishReasonMaxTokens {
		return "", fmt.Errorf("gemini: %w (max_tokens=%d)", ErrTruncated, maxTokens)
	}

	text := geminiText(resp)
	if text == "" {
		return "", fmt.Errorf("gemini: no text content in response")
	}
	g.logger.Debug("Gemini response received", zap.Int("length", len(text)))
	return text, nil
}

func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c.Content == nil {
		return ""
	}
	var texts []string
	for _, part := range c.Content.Parts {
		if part.Text != "" {
			texts = append(texts, part.Text)
		}
	}
	return strings.Join(texts, "")
}
