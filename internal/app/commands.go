package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/lenslate/internal/batch"
	"codeberg.org/snonux/lenslate/internal/cli"
	"codeberg.org/snonux/lenslate/internal/models"
	"codeberg.org/snonux/lenslate/internal/ocr"
	"codeberg.org/snonux/lenslate/internal/phrasebook"
	"codeberg.org/snonux/lenslate/internal/processor"
	"codeberg.org/snonux/lenslate/internal/source"
	"codeberg.org/snonux/lenslate/internal/translation"
)

// OCR recognizes and translates one image, or every image of a batch file
func (a *App) OCR(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	picker := source.NewFilePicker("")
	picker.In, picker.Out = a.in, a.err
	if len(args) > 0 {
		picker.Path = args[0]
	}

	proc, err := a.newProcessor(ctx, picker, a.flags.Save)
	if err != nil {
		return err
	}

	if a.flags.BatchFile != "" {
		entries, err := batch.ReadBatchFile(a.flags.BatchFile)
		if err != nil {
			return err
		}
		summary, err := proc.ProcessBatch(ctx, entries, a.flags.Save)
		if err != nil {
			return err
		}
		if summary.Errors > 0 {
			return cli.ErrReported
		}
		return nil
	}

	if err := proc.LoadImage(ctx, a.flags.Capture); err != nil {
		if processor.IsHandled(err) {
			return cli.ErrReported
		}
		return err
	}
	if a.view.Route() != processor.RouteOCR {
		// Selection cancelled
		return nil
	}

	if cmd.Flags().Changed("mode") {
		if err := proc.SetMode(a.flags.Mode); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("zoom") {
		if err := proc.SetZoomLevel(a.flags.Zoom); err != nil {
			return err
		}
	}
	if a.flags.Save {
		if err := proc.ToggleOCRPhrasebook(ctx); err != nil {
			return err
		}
	}

	a.view.Render()
	return nil
}

// Translate translates the arguments, standard input, or interactively
func (a *App) Translate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	proc, err := a.newProcessor(ctx, nil, a.flags.Save || a.flags.Interactive)
	if err != nil {
		return err
	}

	if a.flags.Interactive {
		return a.interactive(cmd, proc)
	}

	text := strings.Join(args, " ")
	if text == "" {
		data, err := io.ReadAll(a.in)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		text = strings.TrimSpace(string(data))
	}
	if text == "" {
		return fmt.Errorf("nothing to translate")
	}

	a.store.SetInputText(text)
	if err := proc.Translate(ctx); err != nil {
		cli.RenderText(a.out, a.store.Text())
		if processor.IsHandled(err) {
			return cli.ErrReported
		}
		return err
	}

	if a.flags.Save {
		if err := proc.TogglePhrasebook(ctx); err != nil {
			return err
		}
	}

	cli.RenderText(a.out, a.store.Text())
	return nil
}

func (a *App) interactive(cmd *cobra.Command, proc *processor.Processor) error {
	ctx := cmd.Context()
	settings := a.store.Settings()
	fmt.Fprintf(a.err, "Translating %s → %s. Type :save to toggle the phrasebook, :quit to exit.\n",
		translation.DisplayName(settings.InputLang), translation.DisplayName(settings.OutputLang))

	scanner := bufio.NewScanner(a.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case ":quit", ":q":
			return nil
		case ":save":
			if err := proc.TogglePhrasebook(ctx); err != nil {
				fmt.Fprintf(a.err, "Error: %v\n", err)
				continue
			}
			cli.RenderText(a.out, a.store.Text())
			continue
		}

		if err := proc.UpdateInputText(ctx, line); err != nil && !processor.IsHandled(err) {
			fmt.Fprintf(a.err, "Error: %v\n", err)
		}
		if line == "" {
			continue
		}
		if !settings.Realtime {
			if err := proc.Translate(ctx); err != nil && !processor.IsHandled(err) {
				fmt.Fprintf(a.err, "Error: %v\n", err)
			}
		}
		cli.RenderText(a.out, a.store.Text())
	}
	return scanner.Err()
}

// PhrasebookList prints every saved translation
func (a *App) PhrasebookList(cmd *cobra.Command, args []string) error {
	book, err := a.openPhrasebook(cmd.Context())
	if err != nil {
		return err
	}

	docs, err := book.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Fprintln(a.out, "Phrasebook is empty")
		return nil
	}

	for _, doc := range docs {
		entry, err := phrasebook.DecodeEntry(doc)
		if err != nil {
			fmt.Fprintf(a.err, "Warning: %v\n", err)
			continue
		}
		fmt.Fprintf(a.out, "%s  %s→%s  %s = %s\n", entry.ID, entry.InputLang, entry.OutputLang,
			firstLine(entry.InputText), firstLine(entry.OutputText))
	}
	return nil
}

// PhrasebookRemove deletes one saved translation
func (a *App) PhrasebookRemove(cmd *cobra.Command, args []string) error {
	book, err := a.openPhrasebook(cmd.Context())
	if err != nil {
		return err
	}

	if err := book.Remove(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, phrasebook.ErrNotFound) {
			return fmt.Errorf("no phrasebook entry with id %s", args[0])
		}
		return err
	}
	fmt.Fprintf(a.out, "Removed %s\n", args[0])
	return nil
}

// PhrasebookExport writes the phrasebook as Markdown or HTML
func (a *App) PhrasebookExport(cmd *cobra.Command, args []string) error {
	book, err := a.openPhrasebook(cmd.Context())
	if err != nil {
		return err
	}

	docs, err := book.List(cmd.Context())
	if err != nil {
		return err
	}

	w := a.out
	if a.flags.ExportOutput != "" {
		f, err := os.Create(a.flags.ExportOutput)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := phrasebook.Export(w, docs, a.flags.ExportFormat); err != nil {
		return err
	}
	if a.flags.ExportOutput != "" {
		fmt.Fprintf(a.err, "Exported %d entries to %s\n", len(docs), a.flags.ExportOutput)
	}
	return nil
}

// PhrasebookArchive moves the SQLite phrasebook aside
func (a *App) PhrasebookArchive(cmd *cobra.Command, args []string) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	if cfg.PhrasebookBackend != "" && cfg.PhrasebookBackend != phrasebook.BackendSQLite {
		return fmt.Errorf("archive is only supported for the sqlite backend")
	}

	archived, err := phrasebook.Archive(cfg.PhrasebookPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Phrasebook archived to: %s\n", archived)
	return nil
}

// Languages lists the supported languages with their OCR codes
func (a *App) Languages(cmd *cobra.Command, args []string) error {
	fmt.Fprintf(a.out, "%-8s %-22s %-18s %s\n", "CODE", "NAME", "NATIVE", "OCR")
	for _, lang := range translation.SupportedLanguages {
		fmt.Fprintf(a.out, "%-8s %-22s %-18s %s\n", lang,
			translation.DisplayName(lang), translation.SelfName(lang), ocr.ToOCRSpaceLanguage(lang))
	}
	return nil
}

// Models lists the OpenAI models usable for translation
func (a *App) Models(cmd *cobra.Command, args []string) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	return models.NewLister(cfg.OpenAIKey, cfg.OpenAIBaseURL).ListAvailableModels(cmd.Context(), a.out)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i] + " …"
	}
	return s
}
