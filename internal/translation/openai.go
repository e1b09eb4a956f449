package translation

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIConfig configures the OpenAI translator
type OpenAIConfig struct {
	APIKey  string
	Model   string // defaults to gpt-4o-mini
	BaseURL string // optional, for proxies and tests
}

// OpenAITranslator translates through OpenAI chat completions
type OpenAITranslator struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAITranslator creates a new translator instance
func NewOpenAITranslator(cfg *OpenAIConfig) *OpenAITranslator {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	return &OpenAITranslator{
		apiKey: cfg.APIKey,
		model:  model,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// Name returns the provider name
func (t *OpenAITranslator) Name() string {
	return "openai"
}

// TranslateText translates a block of text
func (t *OpenAITranslator) TranslateText(ctx context.Context, sourceLang, targetLang, text string) (string, error) {
	if t.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not found")
	}
	return translateText(ctx, t.complete, "openai.translate_text", sourceLang, targetLang, text)
}

// TranslateLines translates an ordered line array
func (t *OpenAITranslator) TranslateLines(ctx context.Context, sourceLang, targetLang string, lines []string) (*LinesResult, error) {
	if t.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found")
	}
	return translateLines(ctx, t.complete, "openai.translate_lines", sourceLang, targetLang, lines)
}

func (t *OpenAITranslator) complete(ctx context.Context, system, user string, jsonReply bool) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.2,
	}
	if jsonReply {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}
	return resp.Choices[0].Message.Content, nil
}
