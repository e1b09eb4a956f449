package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/lenslate/internal/failure"
	"codeberg.org/snonux/lenslate/internal/source"
	"codeberg.org/snonux/lenslate/internal/state"
)

const (
	// DefaultEndpoint is the OCR.space parse API
	DefaultEndpoint = "https://api.ocr.space/parse/image"
	// DefaultAPIKey is OCR.space's public demo key
	DefaultAPIKey = "helloworld"

	ocrTimeout   = 60 * time.Second
	maxErrorBody = 4096
)

// Extraction is the recognized text of one image
type Extraction struct {
	Text  string       // full parsed text as returned by the service
	Lines []state.Line // lines in reading order
}

// Config configures the OCR client
type Config struct {
	Endpoint   string
	APIKey     string
	HTTPClient *http.Client
	Logger     *slog.Logger

	// Consecutive transport failures before the breaker opens (default 3)
	BreakerThreshold uint32
	// How long the breaker stays open (default 30s)
	BreakerTimeout time.Duration
}

// Client talks to the OCR service
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

// NewClient creates an OCR client
func NewClient(cfg *Config) *Client {
	if cfg == nil {
		cfg = &Config{}
	}

	c := &Client{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if c.apiKey == "" {
		c.apiKey = DefaultAPIKey
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: ocrTimeout}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	threshold := cfg.BreakerThreshold
	if threshold == 0 {
		threshold = 3
	}
	timeout := cfg.BreakerTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ocr",
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return c
}

// Recognize uploads the image and extracts its text lines. A parse failure
// reported by the service is a failure.RecognitionFailed error; everything
// else that goes wrong is failure.ServiceUnreachable.
func (c *Client) Recognize(ctx context.Context, img *source.ImageAsset, sourceLang string) (*Extraction, error) {
	if img == nil || len(img.Data) == 0 {
		return nil, failure.Acquisition("ocr.recognize", fmt.Errorf("no image data"))
	}

	lang := ToOCRSpaceLanguage(sourceLang)
	c.logger.Debug("uploading image", "file", img.FileName, "bytes", len(img.Data), "language", lang)

	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.post(ctx, img, lang)
	})
	if err != nil {
		if _, classified := failure.KindOf(err); classified {
			return nil, err
		}
		return nil, failure.Unreachable("ocr.recognize", err)
	}

	resp := out.(*parseResponse)
	if len(resp.ParsedResults) == 0 {
		return nil, failure.Unreachable("ocr.recognize", fmt.Errorf("response has no parsed results"))
	}

	first := resp.ParsedResults[0]
	if first.FileParseExitCode != exitCodeSuccess {
		return nil, failure.Recognition("ocr.recognize", first.FileParseExitCode, first.ErrorMessage)
	}

	return &Extraction{
		Text:  first.ParsedText,
		Lines: buildLines(first.TextOverlay),
	}, nil
}

// post performs one upload. Only transport and decoding problems are
// returned as errors so that they alone count against the breaker.
func (c *Client) post(ctx context.Context, img *source.ImageAsset, lang string) (*parseResponse, error) {
	body, contentType, err := buildForm(c.apiKey, img, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("ocr service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &parsed, nil
}

func buildForm(apiKey string, img *source.ImageAsset, lang string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("apikey", apiKey); err != nil {
		return nil, "", err
	}

	fileName := img.FileName
	if fileName == "" {
		fileName = "image." + formatExtension(img.Format)
	}
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(img.Data); err != nil {
		return nil, "", err
	}

	if err := w.WriteField("language", lang); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("isOverlayRequired", "true"); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}

func formatExtension(format string) string {
	switch format {
	case "jpeg":
		return "jpg"
	case "":
		return "png"
	default:
		return format
	}
}

// buildLines joins each overlay line's words. Every word is prefixed with a
// space, so line texts keep a leading space.
func buildLines(overlay *textOverlay) []state.Line {
	if overlay == nil {
		return nil
	}

	lines := make([]state.Line, 0, len(overlay.Lines))
	for _, l := range overlay.Lines {
		var sb strings.Builder
		for _, w := range l.Words {
			sb.WriteString(" ")
			sb.WriteString(w.WordText)
		}

		left := 0
		if len(l.Words) > 0 {
			left = int(l.Words[0].Left)
		}

		lines = append(lines, state.Line{
			Height: int(l.MaxHeight),
			Top:    int(l.MinTop),
			Left:   left,
			Text:   sb.String(),
		})
	}
	return lines
}
