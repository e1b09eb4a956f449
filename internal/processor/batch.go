package processor

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"codeberg.org/snonux/lenslate/internal/batch"
	"codeberg.org/snonux/lenslate/internal/phrasebook"
	"codeberg.org/snonux/lenslate/internal/source"
	"codeberg.org/snonux/lenslate/internal/state"
)

// BatchSummary counts the outcome of a batch run
type BatchSummary struct {
	Total     int
	Processed int
	Saved     int
	Errors    int
}

// ProcessBatch runs the OCR pipeline over every entry without touching the
// shared state. Results are printed, and saved to the phrasebook when save
// is set. A failing entry is reported and skipped.
func (p *Processor) ProcessBatch(ctx context.Context, entries []batch.ImageEntry, save bool) (*BatchSummary, error) {
	if save && p.phrasebook == nil {
		return nil, fmt.Errorf("no phrasebook configured")
	}

	settings := p.store.Settings()
	summary := &BatchSummary{Total: len(entries)}

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		outputLang := settings.OutputLang
		if entry.TargetLang != "" {
			outputLang = entry.TargetLang
		}

		fmt.Fprintf(p.out, "\nProcessing %d/%d: %s (%s → %s)\n", i+1, len(entries), entry.ImagePath, settings.InputLang, outputLang)

		result, err := p.processEntry(ctx, entry, settings.InputLang, outputLang)
		if err != nil {
			fmt.Fprintf(p.out, "  Error: %v\n", err)
			summary.Errors++
			continue
		}
		summary.Processed++

		for _, line := range result.OutputLines {
			fmt.Fprintf(p.out, "  %s\n", line.Text)
		}

		if save {
			saved, err := phrasebook.Toggle(ctx, p.phrasebook, p.now, result)
			if err != nil {
				fmt.Fprintf(p.out, "  Warning: %v\n", err)
				continue
			}
			summary.Saved++
			fmt.Fprintf(p.out, "  Saved to phrasebook as %s\n", saved.PhrasebookID)
		}
	}

	fmt.Fprintf(p.out, "\n=== Batch Processing Summary ===\n")
	fmt.Fprintf(p.out, "Total images: %d\n", summary.Total)
	fmt.Fprintf(p.out, "Processed: %d\n", summary.Processed)
	if save {
		fmt.Fprintf(p.out, "Saved: %d\n", summary.Saved)
	}
	if summary.Errors > 0 {
		fmt.Fprintf(p.out, "Errors: %d\n", summary.Errors)
	}
	fmt.Fprintf(p.out, "================================\n")

	return summary, nil
}

func (p *Processor) processEntry(ctx context.Context, entry batch.ImageEntry, inputLang, outputLang string) (*state.OcrResult, error) {
	logger := p.logger.With("run", uuid.NewString(), "file", entry.ImagePath)

	img, err := source.NewFilePicker(entry.ImagePath).Acquire(ctx)
	if err != nil {
		return nil, err
	}

	result, err := p.pipeline.Run(ctx, img, inputLang, outputLang)
	if err != nil {
		logger.Warn("Batch entry failed", "error", err)
		return nil, err
	}
	result.ImageURL = FileURL(img.Path)
	logger.Info("Batch entry done", "lines", len(result.OutputLines))
	return result, nil
}
