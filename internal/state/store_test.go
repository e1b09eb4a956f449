package state

import (
	"testing"
)

func TestStore_ReplaceOCRIsolatesSnapshots(t *testing.T) {
	s := NewStore(Settings{InputLang: "en", OutputLang: "fr"})

	in := &OcrResult{
		Status:     StatusDone,
		InputLines: []Line{{Height: 20, Top: 0, Left: 5, Text: " Hello"}},
	}
	s.ReplaceOCR(in)

	// Mutating the caller's value must not leak into the store
	in.InputLines[0].Text = "changed"
	got := s.OCR()
	if got.InputLines[0].Text != " Hello" {
		t.Errorf("Store shares memory with caller: %q", got.InputLines[0].Text)
	}

	// Mutating a read copy must not leak either
	got.InputLines[0].Text = "also changed"
	if s.OCR().InputLines[0].Text != " Hello" {
		t.Error("Store shares memory with reader")
	}
}

func TestStore_ResetAndObservers(t *testing.T) {
	s := NewStore(Settings{})

	var changes []Change
	s.Watch(func(c Change) { changes = append(changes, c) })

	s.ReplaceOCR(&OcrResult{Status: StatusLoading})
	s.ReplaceOCR(nil)
	s.ReplaceText(&TextResult{Status: StatusFailed})
	s.SetInputText("hi")

	if len(changes) != 4 {
		t.Fatalf("Expected 4 changes, got %d", len(changes))
	}
	if changes[0].Slot != SlotOCR || changes[0].OCR.Status != StatusLoading {
		t.Errorf("Unexpected first change: %+v", changes[0])
	}
	if changes[1].OCR != nil {
		t.Error("Expected reset change to carry nil OCR")
	}
	if changes[2].Slot != SlotText || changes[2].Text.Status != StatusFailed {
		t.Errorf("Unexpected text change: %+v", changes[2])
	}
	if changes[3].Slot != SlotInput || changes[3].InputText != "hi" {
		t.Errorf("Unexpected input change: %+v", changes[3])
	}
	if s.OCR() != nil {
		t.Error("Expected OCR slot to be idle after reset")
	}
}

func TestWithSavedID(t *testing.T) {
	base := &TextResult{Status: StatusDone, OutputText: "Bonjour"}
	saved := base.WithSavedID("2024-03-01T09:30:00.000Z")

	if base.SavedID() != "" {
		t.Error("WithSavedID mutated the receiver")
	}
	if saved.SavedID() != "2024-03-01T09:30:00.000Z" {
		t.Errorf("Unexpected id %q", saved.SavedID())
	}

	ocr := (&OcrResult{Status: StatusDone}).WithSavedID("x")
	if ocr.PhrasebookID != "x" {
		t.Errorf("Unexpected OCR id %q", ocr.PhrasebookID)
	}
}
