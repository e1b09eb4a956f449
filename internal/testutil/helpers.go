package testutil

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// PNGBytes returns a small valid PNG image
func PNGBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(2, 2, color.Black)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

// CreateTestImage writes a valid PNG named name into dir and returns its path
func CreateTestImage(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	CreateTestFile(t, path, PNGBytes(t))
	return path
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// DiscardLogger returns a logger that drops everything
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OverlayLine describes one recognized line for OCRResponse
type OverlayLine struct {
	MaxHeight int
	MinTop    int
	Lefts     []int
	Words     []string
}

// OCRResponse builds an ocr.space parse response body
func OCRResponse(exitCode int, lines ...OverlayLine) string {
	var text strings.Builder
	jsonLines := make([]string, len(lines))

	for i, line := range lines {
		words := make([]string, len(line.Words))
		for j, w := range line.Words {
			left := 0
			if j < len(line.Lefts) {
				left = line.Lefts[j]
			}
			words[j] = fmt.Sprintf(`{"WordText": %q, "Left": %d, "Top": %d, "Height": %d, "Width": 10}`,
				w, left, line.MinTop, line.MaxHeight)
		}
		jsonLines[i] = fmt.Sprintf(`{"MaxHeight": %d, "MinTop": %d, "Words": [%s]}`,
			line.MaxHeight, line.MinTop, strings.Join(words, ", "))
		text.WriteString(strings.Join(line.Words, " ") + "\r\n")
	}

	return fmt.Sprintf(`{"ParsedResults": [{"FileParseExitCode": %d, "ParsedText": %q,
"TextOverlay": {"HasOverlay": true, "Lines": [%s]}}], "OCRExitCode": 1, "IsErroredOnProcessing": false}`,
		exitCode, text.String(), strings.Join(jsonLines, ", "))
}

// NewOCRServer serves body for every OCR request
func NewOCRServer(t *testing.T, body string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

// CaptureOutput captures stdout/stderr during test execution
func CaptureOutput(t *testing.T, f func()) (stdout, stderr string) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()

	os.Stdout = wOut
	os.Stderr = wErr

	outC := make(chan string)
	errC := make(chan string)
	go func() { b, _ := io.ReadAll(rOut); outC <- string(b) }()
	go func() { b, _ := io.ReadAll(rErr); errC <- string(b) }()

	f()

	wOut.Close()
	wErr.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	return <-outC, <-errC
}
