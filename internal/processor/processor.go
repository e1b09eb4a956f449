package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"codeberg.org/snonux/lenslate/internal"
	"codeberg.org/snonux/lenslate/internal/alert"
	"codeberg.org/snonux/lenslate/internal/failure"
	"codeberg.org/snonux/lenslate/internal/phrasebook"
	"codeberg.org/snonux/lenslate/internal/source"
	"codeberg.org/snonux/lenslate/internal/state"
	"codeberg.org/snonux/lenslate/internal/translation"
)

// RouteOCR is the result view shown after a successful OCR run
const RouteOCR = "/ocr"

// Navigator moves the user to a view
type Navigator interface {
	Navigate(route string)
}

// Config wires a Processor. Store, OCR and Translator are required.
type Config struct {
	Store      *state.Store
	Files      source.Source // picked image files
	Camera     source.Source // screen capture
	OCR        Recognizer
	Translator translation.Translator
	Alerts     *alert.Bus
	Phrasebook phrasebook.Store
	Navigator  Navigator
	Logger     *slog.Logger

	// CaptureDir receives images that have no path on disk, so the result
	// view can reference them. Defaults to the system temp directory.
	CaptureDir string
	// Out receives batch progress output. Defaults to stdout.
	Out io.Writer
	Now func() time.Time
}

// Processor runs the OCR and text pipelines against the state store
type Processor struct {
	store      *state.Store
	files      source.Source
	camera     source.Source
	pipeline   *Pipeline
	alerts     *alert.Bus
	phrasebook phrasebook.Store
	navigator  Navigator
	logger     *slog.Logger
	captureDir string
	out        io.Writer
	now        func() time.Time

	ocrRun  runGuard
	textRun runGuard
}

// New creates a processor. State observers are called while the slot is
// locked and must not start runs themselves.
func New(cfg Config) *Processor {
	p := &Processor{
		store:      cfg.Store,
		files:      cfg.Files,
		camera:     cfg.Camera,
		pipeline:   &Pipeline{OCR: cfg.OCR, Translator: cfg.Translator},
		alerts:     cfg.Alerts,
		phrasebook: cfg.Phrasebook,
		navigator:  cfg.Navigator,
		logger:     cfg.Logger,
		captureDir: cfg.CaptureDir,
		out:        cfg.Out,
		now:        cfg.Now,
	}

	if p.alerts == nil {
		p.alerts = alert.NewBus()
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if p.captureDir == "" {
		p.captureDir = os.TempDir()
	}
	if p.out == nil {
		p.out = os.Stdout
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// LoadImage runs the OCR pipeline on an image from the file picker, or from
// the screen when fromCamera is set. Stage failures reset the OCR slot,
// publish one alert and are returned. A cancelled selection returns nil and
// leaves the state untouched.
func (p *Processor) LoadImage(ctx context.Context, fromCamera bool) error {
	src := p.files
	if fromCamera {
		src = p.camera
	}
	if src == nil {
		return fmt.Errorf("no image source configured")
	}

	runID := uuid.NewString()
	logger := p.logger.With("run", runID, "source", src.Name())

	img, err := src.Acquire(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Warn("Image acquisition failed", "error", err)
		p.publish(runID, err)
		return err
	}
	if img == nil {
		logger.Info("Image selection cancelled")
		return nil
	}

	return p.runOCR(ctx, runID, img, logger)
}

// LoadImageAsset runs the OCR pipeline on an already acquired image
func (p *Processor) LoadImageAsset(ctx context.Context, img *source.ImageAsset) error {
	runID := uuid.NewString()
	return p.runOCR(ctx, runID, img, p.logger.With("run", runID, "source", "asset"))
}

func (p *Processor) runOCR(ctx context.Context, runID string, img *source.ImageAsset, logger *slog.Logger) error {
	runCtx, gen, cancel := p.ocrRun.begin(ctx)
	defer cancel()

	settings := p.store.Settings()
	loading := &state.OcrResult{
		Status:     state.StatusLoading,
		InputLang:  settings.InputLang,
		OutputLang: settings.OutputLang,
	}
	if !p.ocrRun.commit(gen, func() { p.store.ReplaceOCR(loading) }) {
		return ErrSuperseded
	}

	logger.Info("Recognizing image", "file", img.FileName, "bytes", len(img.Data))
	result, err := p.pipeline.Run(runCtx, img, settings.InputLang, settings.OutputLang)
	if err != nil {
		return p.failOCR(runCtx, gen, runID, err, logger)
	}

	result.ImageURL = p.imageURL(img, logger)

	if !p.ocrRun.commit(gen, func() { p.store.ReplaceOCR(result) }) {
		logger.Info("Dropping superseded OCR result")
		return ErrSuperseded
	}
	logger.Info("OCR run done", "lines", len(result.OutputLines))

	if p.navigator != nil {
		p.navigator.Navigate(RouteOCR)
	}
	return nil
}

// failOCR resets the OCR slot and alerts, unless the run was replaced
func (p *Processor) failOCR(runCtx context.Context, gen uint64, runID string, err error, logger *slog.Logger) error {
	cancelled := runCtx.Err() != nil

	committed := p.ocrRun.commit(gen, func() { p.store.ReplaceOCR(nil) })
	if !committed {
		logger.Info("Superseded OCR run ended", "error", err)
		return ErrSuperseded
	}
	if cancelled {
		logger.Info("OCR run cancelled")
		return runCtx.Err()
	}

	logger.Warn("OCR run failed", "error", err)
	p.publish(runID, err)
	return err
}

func (p *Processor) publish(runID string, err error) {
	kind, ok := failure.KindOf(err)
	if !ok {
		kind = failure.ServiceUnreachable
	}
	p.alerts.Publish(alert.Alert{Key: alert.KeyFor(kind), RunID: runID, Err: err, Time: p.now()})
}

// imageURL references the image on disk, writing captured images to the
// capture directory first. An empty URL is returned if that fails.
func (p *Processor) imageURL(img *source.ImageAsset, logger *slog.Logger) string {
	path := img.Path
	if path == "" {
		name := img.FileName
		if name == "" {
			name = "capture"
		}
		path = filepath.Join(p.captureDir, internal.SanitizeFilename(strings.TrimSuffix(name, filepath.Ext(name)))+filepath.Ext(name))
		if err := os.WriteFile(path, img.Data, 0644); err != nil {
			logger.Warn("Failed to store captured image", "error", err)
			return ""
		}
	}
	return FileURL(path)
}

// FileURL returns the file:// URL of a local path
func FileURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

// Translate translates the stored input text. Blank input is a no-op.
// Failures are shown inline with the failed status; no alert is sent.
func (p *Processor) Translate(ctx context.Context) error {
	text := p.store.InputText()
	if strings.TrimSpace(text) == "" {
		return nil
	}

	runCtx, gen, cancel := p.textRun.begin(ctx)
	defer cancel()

	runID := uuid.NewString()
	logger := p.logger.With("run", runID)
	settings := p.store.Settings()

	base := state.TextResult{
		InputLang:  settings.InputLang,
		OutputLang: settings.OutputLang,
		InputText:  text,
	}

	loading := base
	loading.Status = state.StatusLoading
	if !p.textRun.commit(gen, func() { p.store.ReplaceText(&loading) }) {
		return ErrSuperseded
	}

	translated, err := p.pipeline.Translator.TranslateText(runCtx, settings.InputLang, settings.OutputLang, text)
	final := base
	if err != nil {
		final.Status = state.StatusFailed
	} else {
		final.Status = state.StatusDone
		final.OutputText = translated
	}

	// A cancelled run that is still current was cancelled by the caller
	if err != nil && runCtx.Err() != nil {
		if p.textRun.commit(gen, func() { p.store.ReplaceText(nil) }) {
			return runCtx.Err()
		}
		return ErrSuperseded
	}

	if !p.textRun.commit(gen, func() { p.store.ReplaceText(&final) }) {
		logger.Info("Dropping superseded translation")
		return ErrSuperseded
	}

	if err != nil {
		logger.Warn("Translation failed", "error", err)
		return err
	}
	logger.Info("Translation done", "provider", p.pipeline.Translator.Name())
	return nil
}

// UpdateInputText stores new input. With realtime translation enabled and
// non-blank input it translates right away; otherwise the previous text
// result is cleared.
func (p *Processor) UpdateInputText(ctx context.Context, text string) error {
	p.store.SetInputText(text)

	if p.store.Settings().Realtime && strings.TrimSpace(text) != "" {
		return p.Translate(ctx)
	}

	p.textRun.supersede(func() { p.store.ReplaceText(nil) })
	return nil
}

// SetZoomLevel changes the zoom of the current OCR result
func (p *Processor) SetZoomLevel(zoom float64) error {
	if zoom <= 0 {
		return fmt.Errorf("invalid zoom level: %v", zoom)
	}
	return p.updateOCR(func(r *state.OcrResult) { r.ZoomLevel = zoom })
}

// SetMode switches the OCR result view between image and text
func (p *Processor) SetMode(mode string) error {
	if mode != state.ModeImage && mode != state.ModeText {
		return fmt.Errorf("invalid mode: %s (valid: %s, %s)", mode, state.ModeImage, state.ModeText)
	}
	return p.updateOCR(func(r *state.OcrResult) { r.Mode = mode })
}

func (p *Processor) updateOCR(change func(*state.OcrResult)) error {
	gen := p.ocrRun.snapshot()
	current := p.store.OCR()
	if current == nil || current.Status != state.StatusDone {
		return fmt.Errorf("no OCR result to update")
	}

	change(current)
	if !p.ocrRun.commit(gen, func() { p.store.ReplaceOCR(current) }) {
		return ErrSuperseded
	}
	return nil
}

// TogglePhrasebook saves or removes the current text result
func (p *Processor) TogglePhrasebook(ctx context.Context) error {
	if p.phrasebook == nil {
		return fmt.Errorf("no phrasebook configured")
	}

	gen := p.textRun.snapshot()
	current := p.store.Text()
	if current == nil || current.Status != state.StatusDone {
		return fmt.Errorf("no translation to save")
	}

	toggled, err := phrasebook.Toggle(ctx, p.phrasebook, p.now, current)
	if err != nil {
		return err
	}
	if !p.textRun.commit(gen, func() { p.store.ReplaceText(toggled) }) {
		return ErrSuperseded
	}
	p.logger.Info("Phrasebook toggled", "slot", state.SlotText, "id", toggled.PhrasebookID)
	return nil
}

// ToggleOCRPhrasebook saves or removes the current OCR result
func (p *Processor) ToggleOCRPhrasebook(ctx context.Context) error {
	if p.phrasebook == nil {
		return fmt.Errorf("no phrasebook configured")
	}

	gen := p.ocrRun.snapshot()
	current := p.store.OCR()
	if current == nil || current.Status != state.StatusDone {
		return fmt.Errorf("no OCR result to save")
	}

	toggled, err := phrasebook.Toggle(ctx, p.phrasebook, p.now, current)
	if err != nil {
		return err
	}
	if !p.ocrRun.commit(gen, func() { p.store.ReplaceOCR(toggled) }) {
		return ErrSuperseded
	}
	p.logger.Info("Phrasebook toggled", "slot", state.SlotOCR, "id", toggled.PhrasebookID)
	return nil
}

// IsHandled reports whether err was already surfaced to the user through
// an alert or the state store
func IsHandled(err error) bool {
	if errors.Is(err, ErrSuperseded) || errors.Is(err, context.Canceled) {
		return true
	}
	_, ok := failure.KindOf(err)
	return ok
}
