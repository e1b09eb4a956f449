package cli

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"codeberg.org/snonux/lenslate/internal/alert"
	"codeberg.org/snonux/lenslate/internal/processor"
	"codeberg.org/snonux/lenslate/internal/state"
)

func doneOCR() *state.OcrResult {
	return &state.OcrResult{
		Status:      state.StatusDone,
		InputLang:   "en",
		OutputLang:  "fr",
		InputText:   "Hello\r\n",
		OutputText:  "Bonjour",
		InputLines:  []state.Line{{Height: 20, Top: 10, Left: 5, Text: " Hello"}},
		OutputLines: []state.Line{{Height: 20, Top: 10, Left: 5, Text: "Bonjour"}},
		ImageURL:    "file:///tmp/sign.png",
		ZoomLevel:   state.DefaultZoomLevel,
		Mode:        state.ModeImage,
	}
}

func TestRenderOCR(t *testing.T) {
	var buf bytes.Buffer
	if !RenderOCR(&buf, doneOCR()) {
		t.Fatal("Expected result to render")
	}
	out := buf.String()
	for _, want := range []string{"English → French", "Image: file:///tmp/sign.png", "[  10,   5 h 20] Bonjour"} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}

	zoomed := doneOCR()
	zoomed.ZoomLevel = 2
	zoomed.PhrasebookID = "2024-03-01T09:30:00.000Z"
	buf.Reset()
	RenderOCR(&buf, zoomed)
	if !strings.Contains(buf.String(), "[  20,  10 h 40] Bonjour") {
		t.Errorf("Zoom not applied:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "Saved to phrasebook (2024-03-01T09:30:00.000Z)") {
		t.Errorf("Saved marker missing:\n%s", buf.String())
	}

	text := doneOCR()
	text.Mode = state.ModeText
	buf.Reset()
	RenderOCR(&buf, text)
	if !strings.Contains(buf.String(), "Hello\n---\nBonjour\n") {
		t.Errorf("Text mode output wrong:\n%s", buf.String())
	}

	if RenderOCR(&buf, nil) || RenderOCR(&buf, &state.OcrResult{Status: state.StatusLoading}) {
		t.Error("Expected nothing rendered for idle or loading slot")
	}
}

func TestRenderText(t *testing.T) {
	tests := []struct {
		result *state.TextResult
		want   string
		shown  bool
	}{
		{&state.TextResult{Status: state.StatusDone, OutputText: "Salut"}, "Salut\n", true},
		{&state.TextResult{Status: state.StatusFailed, InputLang: "en", OutputLang: "fr"}, "Translation failed (en → fr)\n", true},
		{nil, "", false},
		{&state.TextResult{}, "", false},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		if shown := RenderText(&buf, tt.result); shown != tt.shown {
			t.Errorf("RenderText(%+v) shown = %v, want %v", tt.result, shown, tt.shown)
		}
		if buf.String() != tt.want {
			t.Errorf("RenderText(%+v) = %q, want %q", tt.result, buf.String(), tt.want)
		}
	}
}

func TestResultView(t *testing.T) {
	store := state.NewStore(state.Settings{})
	var buf bytes.Buffer
	view := &ResultView{Store: store, Out: &buf}

	if view.Render() {
		t.Error("Expected nothing rendered before navigation")
	}

	store.ReplaceOCR(doneOCR())
	view.Navigate(processor.RouteOCR)
	if view.Route() != processor.RouteOCR || !view.Render() {
		t.Error("Expected OCR view to render after navigation")
	}
	if !strings.Contains(buf.String(), "Bonjour") {
		t.Errorf("Unexpected output:\n%s", buf.String())
	}
}

func TestAlertMessage(t *testing.T) {
	tests := []struct {
		locale string
		key    alert.Key
		prefix string
	}{
		{"en", alert.CannotOpenTheFile, "Cannot open the file."},
		{"de", alert.CannotOpenTheFile, "Die Datei kann nicht"},
		{"de-AT", alert.CannotConnectToServer, "Keine Verbindung"},
		{"fr", alert.CannotRecognizeImage, "Impossible de reconnaître"},
		{"es", alert.CannotConnectToServer, "No se puede conectar"},
		{"ja", alert.CannotRecognizeImage, "Cannot recognize the image"},
		{"", alert.CannotConnectToServer, "Cannot connect to the server"},
	}

	for _, tt := range tests {
		if got := AlertMessage(tt.locale, tt.key); !strings.HasPrefix(got, tt.prefix) {
			t.Errorf("AlertMessage(%q, %s) = %q, want prefix %q", tt.locale, tt.key, got, tt.prefix)
		}
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "info", "json")
	logger.Debug("hidden")
	logger.Info("shown", "run", "abc")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("Debug message logged at info level")
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"run":"abc"`) {
		t.Errorf("Expected JSON log line, got %s", out)
	}

	if ParseLevel("debug") != slog.LevelDebug || ParseLevel("bogus") != slog.LevelWarn {
		t.Error("ParseLevel mapping wrong")
	}
}
