package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

const (
	anthropicAPIURL       = "https://api.anthropic.com/v1/messages"
	anthropicDefaultModel = "claude-sonnet-4-6"
	anthropicAPIVersion   = "2023-06-01"
	anthropicName         = "anthropic"
)

// AnthropicProvider implements Provider using the Anthropic Messages API.
type AnthropicProvider struct {
	apiKey string
	apiURL string
	client *http.Client
	logger *zap.Logger
}

// NewAnthropic creates an Anthropic provider.
func NewAnthropic(apiKey string, logger *zap.Logger) (*AnthropicProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY not set (get a key at https://console.anthropic.com/)")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnthropicProvider{apiKey: apiKey, apiURL: anthropicAPIURL, client: &http.Client{}, logger: logger}, nil
}

func (a *AnthropicProvider) Name() string { return anthropicName }

func (a *AnthropicProvider) Generate(ctx context.Context, prompt Prompt, s Settings) (string, error) {
	model := s.Model
	if model == "" {
		model = anthropicDefaultModel
	}

	maxTokens := s.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 8192
	}

	reqBody := anthropicRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: &s.Temperature,
		System:      prompt.System,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt.User},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("anthropic: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("anthropic: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", a.apiKey)
	req.Header.Set("Anthropic-Version", anthropicAPIVersion)

	a.logger.Debug("Generating with Anthropic", zap.String("model", model), zap.Int("prompt_bytes", len(prompt.User)))

	resp, err := a.client.Do(req)
	if err != nil {
		return "", transportError(anthropicName, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError(anthropicName, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", statusError(anthropicName, resp.StatusCode, anthropicErrorMessage(respBody))
	}

	var result anthropicResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("anthropic: parse response: %w", err)
	}

	if result.StopReason == "max_tokens" {
		return "", fmt.Errorf("anthropic: %w (max_tokens=%d)", ErrTruncated, maxTokens)
	}

	for _, block := range result.Content {
		if block.Type == "text" {
			a.logger.Debug("Anthropic response received", zap.Int("length", len(block.Text)))
			return block.Text, nil
		}
	}

	return "", fmt.Errorf("anthropic: no text content in response")
}

// anthropicErrorMessage pulls error.message out of an error body,
// falling back to the raw body.
func anthropicErrorMessage(body []byte) string {
	var e struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	return string(body)
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature *float64           `json:"temperature,omitempty"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content    []anthropicContentBlock `json:"content"`
	StopReason string                  `json:"stop_reason,omitempty"`
}

type anthropicContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}
