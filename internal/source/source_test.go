package source

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"codeberg.org/snonux/lenslate/internal/failure"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.White)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	if _, err := DetectFormat(nil); err == nil {
		t.Error("Expected error for empty data")
	}
	if _, err := DetectFormat([]byte("not an image")); err == nil {
		t.Error("Expected error for text data")
	}

	format, err := DetectFormat(pngBytes(t))
	if err != nil {
		t.Fatalf("DetectFormat failed: %v", err)
	}
	if format != "png" {
		t.Errorf("Expected png, got %s", format)
	}
}

func TestFilePicker_PresetPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.png")
	if err := os.WriteFile(path, pngBytes(t), 0644); err != nil {
		t.Fatalf("Failed to write image: %v", err)
	}

	asset, err := NewFilePicker(path).Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if asset.FileName != "menu.png" {
		t.Errorf("Expected file name menu.png, got %s", asset.FileName)
	}
	if !filepath.IsAbs(asset.Path) {
		t.Errorf("Expected absolute path, got %s", asset.Path)
	}
	if asset.Format != "png" {
		t.Errorf("Expected png format, got %s", asset.Format)
	}
}

func TestFilePicker_PromptCancel(t *testing.T) {
	var out bytes.Buffer
	p := &FilePicker{In: strings.NewReader("\n"), Out: &out}

	asset, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Expected no error on cancel, got %v", err)
	}
	if asset != nil {
		t.Error("Expected nil asset on cancel")
	}
	if !strings.Contains(out.String(), "empty to cancel") {
		t.Errorf("Expected prompt, got %q", out.String())
	}
}

func TestFilePicker_PromptPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sign.png")
	if err := os.WriteFile(path, pngBytes(t), 0644); err != nil {
		t.Fatalf("Failed to write image: %v", err)
	}

	p := &FilePicker{In: strings.NewReader(path + "\n")}
	asset, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if asset == nil || asset.FileName != "sign.png" {
		t.Errorf("Unexpected asset: %+v", asset)
	}
}

func TestFilePicker_Errors(t *testing.T) {
	dir := t.TempDir()
	textFile := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(textFile, []byte("hello"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	bigFile := filepath.Join(dir, "big.png")
	if err := os.WriteFile(bigFile, pngBytes(t), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	tests := []struct {
		name   string
		picker *FilePicker
	}{
		{"missing file", &FilePicker{Path: filepath.Join(dir, "missing.png")}},
		{"directory", &FilePicker{Path: dir}},
		{"not an image", &FilePicker{Path: textFile}},
		{"too large", &FilePicker{Path: bigFile, MaxFileSize: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.picker.Acquire(context.Background())
			if kind, _ := failure.KindOf(err); kind != failure.ImageAcquisition {
				t.Errorf("Expected ImageAcquisition error, got %v", err)
			}
		})
	}
}

func TestScreenCapture(t *testing.T) {
	s := &ScreenCapture{
		Grab: func() (*image.RGBA, error) {
			return image.NewRGBA(image.Rect(0, 0, 8, 8)), nil
		},
		now: func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC) },
	}

	asset, err := s.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if asset.FileName != "capture-20240301-093000.png" {
		t.Errorf("Unexpected file name %s", asset.FileName)
	}
	if format, err := DetectFormat(asset.Data); err != nil || format != "png" {
		t.Errorf("Capture is not a PNG: %s, %v", format, err)
	}
}

func TestScreenCapture_CancelAndFailure(t *testing.T) {
	cancelled := &ScreenCapture{Confirm: func() bool { return false }}
	asset, err := cancelled.Acquire(context.Background())
	if asset != nil || err != nil {
		t.Errorf("Expected (nil, nil) on cancel, got (%v, %v)", asset, err)
	}

	failing := &ScreenCapture{Grab: func() (*image.RGBA, error) {
		return nil, errors.New("no display")
	}}
	_, err = failing.Acquire(context.Background())
	if kind, _ := failure.KindOf(err); kind != failure.ImageAcquisition {
		t.Errorf("Expected ImageAcquisition error, got %v", err)
	}
}
