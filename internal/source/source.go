package source

import (
	"bytes"
	"context"
	"fmt"
	"image"

	// Decoders used to validate picked files
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageAsset is an image ready for upload. It is consumed once.
type ImageAsset struct {
	Data     []byte // raw encoded image bytes
	FileName string // name reported to the OCR service
	Path     string // local path when the asset came from disk
	Format   string // decoder name, e.g. "png"
}

// Source yields one image per call
type Source interface {
	// Acquire returns the image, or nil with a nil error when the user cancels
	Acquire(ctx context.Context) (*ImageAsset, error)

	// Name returns the source name
	Name() string
}

// DetectFormat checks that data starts with a decodable image header and
// returns the format name
func DetectFormat(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty image data")
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("unsupported image: %w", err)
	}
	return format, nil
}
