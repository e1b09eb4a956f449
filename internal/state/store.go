package state

import (
	"sync"
)

// Slot identifies which part of the state a change touched
type Slot string

const (
	SlotOCR   Slot = "ocr"
	SlotText  Slot = "text"
	SlotInput Slot = "input"
)

// Change describes one committed replacement. OCR and Text hold copies of
// the new slot values; a nil value means the slot was reset.
type Change struct {
	Slot      Slot
	OCR       *OcrResult
	Text      *TextResult
	InputText string
}

// Observer is notified after every committed change
type Observer func(Change)

// Store is the explicit state context passed to the pipeline
type Store struct {
	mu        sync.RWMutex
	settings  Settings
	inputText string
	ocr       *OcrResult
	text      *TextResult
	observers []Observer
}

// NewStore creates a store with the given settings and empty slots
func NewStore(settings Settings) *Store {
	return &Store{settings: settings}
}

// Settings returns the current settings
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SetSettings replaces the settings
func (s *Store) SetSettings(settings Settings) {
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
}

// Watch registers an observer for committed changes
func (s *Store) Watch(o Observer) {
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

// OCR returns a copy of the OCR slot, nil when idle
func (s *Store) OCR() *OcrResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ocr.Clone()
}

// ReplaceOCR replaces the OCR slot; nil resets it
func (s *Store) ReplaceOCR(r *OcrResult) {
	s.mu.Lock()
	s.ocr = r.Clone()
	change := Change{Slot: SlotOCR, OCR: r.Clone()}
	observers := s.observers
	s.mu.Unlock()
	notify(observers, change)
}

// Text returns a copy of the text translation slot, nil when idle
func (s *Store) Text() *TextResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text.Clone()
}

// ReplaceText replaces the text translation slot; nil resets it
func (s *Store) ReplaceText(r *TextResult) {
	s.mu.Lock()
	s.text = r.Clone()
	change := Change{Slot: SlotText, Text: r.Clone()}
	observers := s.observers
	s.mu.Unlock()
	notify(observers, change)
}

// InputText returns the text awaiting translation
func (s *Store) InputText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inputText
}

// SetInputText replaces the text awaiting translation
func (s *Store) SetInputText(text string) {
	s.mu.Lock()
	s.inputText = text
	observers := s.observers
	s.mu.Unlock()
	notify(observers, Change{Slot: SlotInput, InputText: text})
}

func notify(observers []Observer, change Change) {
	for _, o := range observers {
		o(change)
	}
}
