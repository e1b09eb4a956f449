package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister. baseURL is optional.
func NewLister(apiKey, baseURL string) *Lister {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(cfg),
	}
}

// Categorized holds model ids grouped by use
type Categorized struct {
	Translation []string // chat models usable for translation
	Other       []string
}

// Categorize sorts model ids into translation-capable and other models
func Categorize(ids []string) Categorized {
	var c Categorized
	for _, id := range ids {
		if isTranslationModel(id) {
			c.Translation = append(c.Translation, id)
		} else {
			c.Other = append(c.Other, id)
		}
	}
	sort.Strings(c.Translation)
	sort.Strings(c.Other)
	return c
}

func isTranslationModel(id string) bool {
	for _, skip := range []string{"tts", "audio", "realtime", "transcribe", "search", "image", "embedding", "instruct"} {
		if strings.Contains(id, skip) {
			return false
		}
	}
	return strings.HasPrefix(id, "gpt-") || strings.HasPrefix(id, "chatgpt-") ||
		strings.HasPrefix(id, "o1") || strings.HasPrefix(id, "o3") || strings.HasPrefix(id, "o4")
}

// ListAvailableModels writes the available models to w, translation models first
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	if l.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .lenslate.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	ids := make([]string, len(models.Models))
	for i, model := range models.Models {
		ids[i] = model.ID
	}
	c := Categorize(ids)

	fmt.Fprintln(w, "Available OpenAI Models:")
	fmt.Fprintln(w, "\nTranslation Models (translation.openai_model):")
	if len(c.Translation) == 0 {
		fmt.Fprintln(w, "  No translation models found")
	}
	for _, id := range c.Translation {
		fmt.Fprintf(w, "  %s\n", id)
	}

	fmt.Fprintf(w, "\nOther Models: %d\n", len(c.Other))
	return nil
}
