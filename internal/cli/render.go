package cli

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"codeberg.org/snonux/lenslate/internal/processor"
	"codeberg.org/snonux/lenslate/internal/state"
	"codeberg.org/snonux/lenslate/internal/translation"
)

// ResultView is the terminal counterpart of the result screens. It
// remembers where the processor navigated and renders that view.
type ResultView struct {
	Store *state.Store
	Out   io.Writer

	mu    sync.Mutex
	route string
}

// Navigate records the route to render
func (v *ResultView) Navigate(route string) {
	v.mu.Lock()
	v.route = route
	v.mu.Unlock()
}

// Route returns the last route navigated to
func (v *ResultView) Route() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.route
}

// Render writes the current view; it reports false when nothing was shown
func (v *ResultView) Render() bool {
	switch v.Route() {
	case processor.RouteOCR:
		return RenderOCR(v.Out, v.Store.OCR())
	default:
		return false
	}
}

// RenderOCR writes an OCR result in its view mode. In image mode every
// line is prefixed with its scaled position.
func RenderOCR(w io.Writer, r *state.OcrResult) bool {
	if r == nil || r.Status != state.StatusDone {
		return false
	}

	fmt.Fprintf(w, "%s → %s\n", translation.DisplayName(r.InputLang), translation.DisplayName(r.OutputLang))
	if r.ImageURL != "" {
		fmt.Fprintf(w, "Image: %s\n", r.ImageURL)
	}
	fmt.Fprintln(w)

	if r.Mode == state.ModeText {
		fmt.Fprintln(w, strings.TrimSpace(r.InputText))
		fmt.Fprintln(w, "---")
		fmt.Fprintln(w, r.OutputText)
	} else {
		zoom := r.ZoomLevel
		if zoom <= 0 {
			zoom = state.DefaultZoomLevel
		}
		for _, line := range r.OutputLines {
			fmt.Fprintf(w, "[%4d,%4d h%3d] %s\n",
				scale(line.Top, zoom), scale(line.Left, zoom), scale(line.Height, zoom), line.Text)
		}
	}

	renderSaved(w, r.PhrasebookID)
	return true
}

// RenderText writes a text result, including the inline failed status
func RenderText(w io.Writer, r *state.TextResult) bool {
	if r == nil {
		return false
	}

	switch r.Status {
	case state.StatusDone:
		fmt.Fprintln(w, r.OutputText)
		renderSaved(w, r.PhrasebookID)
	case state.StatusFailed:
		fmt.Fprintf(w, "Translation failed (%s → %s)\n", r.InputLang, r.OutputLang)
	case state.StatusLoading:
		fmt.Fprintln(w, "Translating...")
	default:
		return false
	}
	return true
}

func renderSaved(w io.Writer, id string) {
	if id != "" {
		fmt.Fprintf(w, "★ Saved to phrasebook (%s)\n", id)
	}
}

func scale(v int, zoom float64) int {
	return int(math.Round(float64(v) * zoom))
}
