package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"codeberg.org/snonux/lenslate/internal/alert"
	"codeberg.org/snonux/lenslate/internal/cli"
	"codeberg.org/snonux/lenslate/internal/ocr"
	"codeberg.org/snonux/lenslate/internal/phrasebook"
	"codeberg.org/snonux/lenslate/internal/platform"
	"codeberg.org/snonux/lenslate/internal/processor"
	"codeberg.org/snonux/lenslate/internal/source"
	"codeberg.org/snonux/lenslate/internal/state"
	"codeberg.org/snonux/lenslate/internal/translation"
)

// App holds the services shared by the subcommands. Services are built
// on first use, after cobra has loaded the configuration.
type App struct {
	flags *cli.Flags
	in    io.Reader
	out   io.Writer
	err   io.Writer

	cfg        *cli.Config
	logger     *slog.Logger
	store      *state.Store
	bus        *alert.Bus
	view       *cli.ResultView
	phrasebook phrasebook.Store
	closers    []func() error
}

// New creates an app reading from stdin and writing to stdout/stderr
func New(flags *cli.Flags) *App {
	return &App{flags: flags, in: os.Stdin, out: os.Stdout, err: os.Stderr}
}

// SetIO replaces the standard streams
func (a *App) SetIO(in io.Reader, out, errOut io.Writer) {
	a.in, a.out, a.err = in, out, errOut
}

// Close releases every opened service
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// config loads the configuration and the services that need no network
func (a *App) config() (*cli.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}

	cfg, err := cli.LoadConfig()
	if err != nil {
		return nil, err
	}
	a.cfg = cfg
	a.logger = cli.NewLogger(a.err, cfg.LogLevel, cfg.LogFormat)

	a.store = state.NewStore(state.Settings{
		InputLang:  cfg.InputLang,
		OutputLang: cfg.OutputLang,
		Realtime:   cfg.Realtime,
	})
	a.view = &cli.ResultView{Store: a.store, Out: a.out}

	a.bus = alert.NewBus()
	a.bus.Subscribe(func(al alert.Alert) {
		fmt.Fprintf(a.err, "⚠ %s\n", cli.AlertMessage(cfg.Locale, al.Key))
	})
	if cfg.AMQPURL != "" {
		forwarder, err := alert.NewAMQPForwarder(cfg.AMQPURL, cfg.AMQPQueue, a.logger)
		if err != nil {
			a.logger.Warn("Alert forwarding disabled", "error", err)
		} else {
			a.bus.Subscribe(forwarder.Listen)
			a.closers = append(a.closers, forwarder.Close)
		}
	}

	platform.ApplyTheme(platform.NewTitleBar(a.logger), cfg.ThemePrimary, a.logger)
	return cfg, nil
}

// openPhrasebook opens the configured phrasebook once
func (a *App) openPhrasebook(ctx context.Context) (phrasebook.Store, error) {
	if a.phrasebook != nil {
		return a.phrasebook, nil
	}
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}

	store, err := phrasebook.Open(ctx, phrasebook.Config{
		Backend:  cfg.PhrasebookBackend,
		Path:     cfg.PhrasebookPath,
		RedisURL: cfg.PhrasebookRedisURL,
	})
	if err != nil {
		return nil, err
	}
	a.phrasebook = store
	a.closers = append(a.closers, store.Close)
	return store, nil
}

// newTranslator creates the configured provider behind a cache
func (a *App) newTranslator(ctx context.Context) (translation.Translator, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}

	var t translation.Translator
	switch cfg.Provider {
	case "gemini":
		t, err = translation.NewGeminiTranslator(ctx, &translation.GeminiConfig{
			APIKey:  cfg.GeminiKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
		})
		if err != nil {
			return nil, err
		}
	default:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .lenslate.yaml")
		}
		t = translation.NewOpenAITranslator(&translation.OpenAIConfig{
			APIKey:  cfg.OpenAIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		})
	}
	return translation.NewCachingTranslator(t, nil), nil
}

// newProcessor builds a processor whose file source is picker
func (a *App) newProcessor(ctx context.Context, picker source.Source, withPhrasebook bool) (*processor.Processor, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}

	translator, err := a.newTranslator(ctx)
	if err != nil {
		return nil, err
	}

	var book phrasebook.Store
	if withPhrasebook {
		if book, err = a.openPhrasebook(ctx); err != nil {
			return nil, err
		}
	}

	return processor.New(processor.Config{
		Store:  a.store,
		Files:  picker,
		Camera: source.NewScreenCapture(),
		OCR: ocr.NewClient(&ocr.Config{
			Endpoint: cfg.OCREndpoint,
			APIKey:   cfg.OCRAPIKey,
			Logger:   a.logger,
		}),
		Translator: translator,
		Alerts:     a.bus,
		Phrasebook: book,
		Navigator:  a.view,
		Logger:     a.logger,
		Out:        a.out,
	}), nil
}
