package translation

import (
	"context"

	"codeberg.org/snonux/lenslate/internal/failure"
)

// CachingTranslator answers repeated requests from a TranslationCache.
// Line arrays only skip the remote call when every line is cached.
type CachingTranslator struct {
	next  Translator
	cache *TranslationCache
}

// NewCachingTranslator wraps next with the given cache
func NewCachingTranslator(next Translator, cache *TranslationCache) *CachingTranslator {
	if cache == nil {
		cache = NewTranslationCache()
	}
	return &CachingTranslator{next: next, cache: cache}
}

// Name returns the wrapped provider name
func (c *CachingTranslator) Name() string {
	return c.next.Name() + " (cached)"
}

// TranslateText translates text, consulting the cache first
func (c *CachingTranslator) TranslateText(ctx context.Context, sourceLang, targetLang, text string) (string, error) {
	if translation, ok := c.cache.Get(sourceLang, targetLang, text); ok {
		return translation, nil
	}

	translation, err := c.next.TranslateText(ctx, sourceLang, targetLang, text)
	if err != nil {
		return "", err
	}
	c.cache.Add(sourceLang, targetLang, text, translation)
	return translation, nil
}

// TranslateLines translates lines, consulting the cache first
func (c *CachingTranslator) TranslateLines(ctx context.Context, sourceLang, targetLang string, lines []string) (*LinesResult, error) {
	if cached, ok := c.lookupAll(sourceLang, targetLang, lines); ok {
		return cached, nil
	}

	result, err := c.next.TranslateLines(ctx, sourceLang, targetLang, lines)
	if err != nil {
		return nil, err
	}
	if len(result.OutputArr) != len(lines) {
		return nil, failure.Mismatch("translation.cache", len(lines), len(result.OutputArr))
	}
	for i, line := range lines {
		c.cache.Add(sourceLang, targetLang, line, result.OutputArr[i])
	}
	return result, nil
}

func (c *CachingTranslator) lookupAll(sourceLang, targetLang string, lines []string) (*LinesResult, bool) {
	if len(lines) == 0 {
		return nil, false
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		translation, ok := c.cache.Get(sourceLang, targetLang, line)
		if !ok {
			return nil, false
		}
		out[i] = translation
	}
	return &LinesResult{OutputArr: out, OutputText: joinLines(out)}, true
}
