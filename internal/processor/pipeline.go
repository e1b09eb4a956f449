package processor

import (
	"context"

	"codeberg.org/snonux/lenslate/internal/failure"
	"codeberg.org/snonux/lenslate/internal/ocr"
	"codeberg.org/snonux/lenslate/internal/source"
	"codeberg.org/snonux/lenslate/internal/state"
	"codeberg.org/snonux/lenslate/internal/translation"
)

// Recognizer extracts text lines from an image
type Recognizer interface {
	Recognize(ctx context.Context, img *source.ImageAsset, sourceLang string) (*ocr.Extraction, error)
}

// Pipeline is the stateless OCR, translate and merge chain
type Pipeline struct {
	OCR        Recognizer
	Translator translation.Translator
}

// Run recognizes img and translates its lines. The returned result is
// complete except for the image URL.
func (pl *Pipeline) Run(ctx context.Context, img *source.ImageAsset, inputLang, outputLang string) (*state.OcrResult, error) {
	extraction, err := pl.OCR.Recognize(ctx, img, inputLang)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(extraction.Lines))
	for i, line := range extraction.Lines {
		texts[i] = line.Text
	}

	translated, err := pl.Translator.TranslateLines(ctx, inputLang, outputLang, texts)
	if err != nil {
		return nil, err
	}

	outputLines, err := MergeLines(extraction.Lines, translated.OutputArr)
	if err != nil {
		return nil, err
	}

	return &state.OcrResult{
		Status:      state.StatusDone,
		InputLang:   inputLang,
		OutputLang:  outputLang,
		InputText:   extraction.Text,
		InputLines:  extraction.Lines,
		OutputText:  translated.OutputText,
		OutputLines: outputLines,
		ZoomLevel:   state.DefaultZoomLevel,
		Mode:        state.ModeImage,
	}, nil
}

// MergeLines pairs every input line's geometry with its translation
func MergeLines(input []state.Line, translations []string) ([]state.Line, error) {
	if len(input) != len(translations) {
		return nil, failure.Mismatch("processor.merge", len(input), len(translations))
	}

	out := make([]state.Line, len(input))
	for i, line := range input {
		out[i] = state.Line{
			Height: line.Height,
			Top:    line.Top,
			Left:   line.Left,
			Text:   translations[i],
		}
	}
	return out, nil
}
