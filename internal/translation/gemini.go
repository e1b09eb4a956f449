package translation

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiConfig configures the Gemini translator
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// GeminiTranslator translates through the Gemini API
type GeminiTranslator struct {
	model  string
	client *genai.Client
}

// NewGeminiTranslator creates a Gemini-backed translator
func NewGeminiTranslator(ctx context.Context, cfg *GeminiConfig) (*GeminiTranslator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key not found")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	return &GeminiTranslator{model: model, client: client}, nil
}

// Name returns the provider name
func (g *GeminiTranslator) Name() string {
	return "gemini"
}

// TranslateText translates a block of text
func (g *GeminiTranslator) TranslateText(ctx context.Context, sourceLang, targetLang, text string) (string, error) {
	return translateText(ctx, g.complete, "gemini.translate_text", sourceLang, targetLang, text)
}

// TranslateLines translates an ordered line array
func (g *GeminiTranslator) TranslateLines(ctx context.Context, sourceLang, targetLang string, lines []string) (*LinesResult, error) {
	return translateLines(ctx, g.complete, "gemini.translate_lines", sourceLang, targetLang, lines)
}

func (g *GeminiTranslator) complete(ctx context.Context, system, user string, jsonReply bool) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.2),
	}
	if jsonReply {
		config.ResponseMIMEType = "application/json"
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(user), config)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no translation returned")
	}
	return text, nil
}
