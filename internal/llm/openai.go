package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

const (
	openaiDefaultModel = "gpt-4o"
	openaiName         = "openai"
)

// OpenAIProvider implements Provider using the OpenAI Chat Completions API.
type OpenAIProvider struct {
	client openai.Client
	logger *zap.Logger
}

// NewOpenAI creates an OpenAI provider. Extra request options (a base
// URL or HTTP client) are passed through to the SDK client. The SDK's
// own retries are disabled.
func NewOpenAI(apiKey string, logger *zap.Logger, opts ...option.RequestOption) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)
	return &OpenAIProvider{client: openai.NewClient(opts...), logger: logger}, nil
}

func (o *OpenAIProvider) Name() string { return openaiName }

func (o *OpenAIProvider) Generate(ctx context.Context, prompt Prompt, s Settings) (string, error) {
	model := s.Model
	if model == "" {
		model = openaiDefaultModel
	}

	maxTokens := s.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if prompt.System != "" {
		messages = append(messages, openai.SystemMessage(prompt.System))
	}
	messages = append(messages, openai.UserMessage(prompt.User))

	params := openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(model),
		Messages:            messages,
		MaxCompletionTokens: openai.Int(int64(maxTokens)),
		Temperature:         openai.Float(s.Temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	}
	if s.Seed != nil {
		params.Seed = openai.Int(int64(*s.Seed))
	}

	o.logger.Debug("Generating with OpenAI", zap.String("model", model))

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			msg := apiErr.Message
			if msg == "" {
				msg = apiErr.RawJSON()
			}
			return "", statusError(openaiName, apiErr.StatusCode, msg)
		}
		return "", transportError(openaiName, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices in response")
	}

	choice := resp.Choices[0]
	if choice.FinishReason == "length" {
		return "", fmt.Errorf("openai: %w (max_tokens=%d)", ErrTruncated, maxTokens)
	}

	o.logger.Debug("OpenAI response received",
		zap.Int("length", len(choice.Message.Content)),
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
	)
	return choice.Message.Content, nil
}
