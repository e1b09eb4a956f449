package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"codeberg.org/snonux/lenslate/internal/alert"
	"codeberg.org/snonux/lenslate/internal/ocr"
	"codeberg.org/snonux/lenslate/internal/source"
	"codeberg.org/snonux/lenslate/internal/state"
	"codeberg.org/snonux/lenslate/internal/translation"
)

// MockSource returns a fixed image, cancel or error
type MockSource struct {
	Asset *source.ImageAsset
	Err   error
	Calls int
}

// Acquire returns the configured asset or error
func (m *MockSource) Acquire(ctx context.Context) (*source.ImageAsset, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Asset, nil
}

// Name returns the source name
func (m *MockSource) Name() string {
	return "mock"
}

// MockRecognizer mocks the OCR service
type MockRecognizer struct {
	Extraction *ocr.Extraction
	Err        error
	// Func replaces the fixed answer when set
	Func func(ctx context.Context, img *source.ImageAsset, lang string) (*ocr.Extraction, error)

	mu    sync.Mutex
	Calls []string
}

// Recognize mocks recognizing an image
func (m *MockRecognizer) Recognize(ctx context.Context, img *source.ImageAsset, lang string) (*ocr.Extraction, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, fmt.Sprintf("Recognize: %s (%s)", img.FileName, lang))
	m.mu.Unlock()

	if m.Func != nil {
		return m.Func(ctx, img, lang)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Extraction, nil
}

// CallCount returns the number of Recognize calls
func (m *MockRecognizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockTranslator mocks translation service
type MockTranslator struct {
	Translations map[string]string
	Errors       map[string]error
	// LinesErr fails every TranslateLines call
	LinesErr error
	// Drop removes this many entries from every TranslateLines answer
	Drop int

	mu    sync.Mutex
	Calls []string
}

// Name returns the provider name
func (m *MockTranslator) Name() string {
	return "mock"
}

func (m *MockTranslator) record(call string) {
	m.mu.Lock()
	m.Calls = append(m.Calls, call)
	m.mu.Unlock()
}

func (m *MockTranslator) translate(text string) (string, error) {
	if err, ok := m.Errors[text]; ok {
		return "", err
	}
	if translation, ok := m.Translations[text]; ok {
		return translation, nil
	}
	return fmt.Sprintf("mock translation of %s", strings.TrimSpace(text)), nil
}

// TranslateText mocks translating text
func (m *MockTranslator) TranslateText(ctx context.Context, fromLang, toLang, text string) (string, error) {
	m.record(fmt.Sprintf("TranslateText: %s (%s->%s)", text, fromLang, toLang))
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return m.translate(text)
}

// TranslateLines mocks translating a line array
func (m *MockTranslator) TranslateLines(ctx context.Context, fromLang, toLang string, lines []string) (*translation.LinesResult, error) {
	m.record(fmt.Sprintf("TranslateLines: %d lines (%s->%s)", len(lines), fromLang, toLang))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.LinesErr != nil {
		return nil, m.LinesErr
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		translated, err := m.translate(line)
		if err != nil {
			return nil, err
		}
		out = append(out, translated)
	}
	if m.Drop > 0 {
		out = out[:max(0, len(out)-m.Drop)]
	}
	return &translation.LinesResult{OutputArr: out, OutputText: strings.Join(out, "\n")}, nil
}

// CallCount returns the number of recorded calls
func (m *MockTranslator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockNavigator records navigation
type MockNavigator struct {
	mu     sync.Mutex
	Routes []string
}

// Navigate records the route
func (m *MockNavigator) Navigate(route string) {
	m.mu.Lock()
	m.Routes = append(m.Routes, route)
	m.mu.Unlock()
}

// Visited returns a copy of the recorded routes
func (m *MockNavigator) Visited() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Routes...)
}

// AlertRecorder collects alerts from a bus
type AlertRecorder struct {
	mu     sync.Mutex
	alerts []alert.Alert
}

// Listen records an alert; pass it to Bus.Subscribe
func (r *AlertRecorder) Listen(a alert.Alert) {
	r.mu.Lock()
	r.alerts = append(r.alerts, a)
	r.mu.Unlock()
}

// Keys returns the keys of all recorded alerts
func (r *AlertRecorder) Keys() []alert.Key {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]alert.Key, len(r.alerts))
	for i, a := range r.alerts {
		keys[i] = a.Key
	}
	return keys
}

// StateRecorder records every OCR and text slot replacement of a store
type StateRecorder struct {
	mu   sync.Mutex
	OCR  []*state.OcrResult
	Text []*state.TextResult
}

// Observe records a change; pass it to Store.Watch
func (r *StateRecorder) Observe(c state.Change) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch c.Slot {
	case state.SlotOCR:
		r.OCR = append(r.OCR, c.OCR)
	case state.SlotText:
		r.Text = append(r.Text, c.Text)
	}
}

// OCRStatuses returns the status of every OCR replacement; a reset is "nil"
func (r *StateRecorder) OCRStatuses() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.OCR))
	for i, res := range r.OCR {
		out[i] = statusName(res)
	}
	return out
}

// TextStatuses returns the status of every text replacement; a reset is "nil"
func (r *StateRecorder) TextStatuses() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Text))
	for i, res := range r.Text {
		if res == nil {
			out[i] = "nil"
		} else {
			out[i] = string(res.Status)
		}
	}
	return out
}

func statusName(r *state.OcrResult) string {
	if r == nil {
		return "nil"
	}
	return string(r.Status)
}
