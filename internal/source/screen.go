package source

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/vova616/screenshot"

	"codeberg.org/snonux/lenslate/internal/failure"
)

// ScreenCapture grabs the primary screen, the desktop stand-in for a camera
type ScreenCapture struct {
	// Confirm is asked before capturing; returning false cancels
	Confirm func() bool
	// Grab defaults to screenshot.CaptureScreen
	Grab func() (*image.RGBA, error)
	now  func() time.Time
}

// NewScreenCapture creates a capture source without confirmation
func NewScreenCapture() *ScreenCapture {
	return &ScreenCapture{
		Grab: screenshot.CaptureScreen,
		now:  time.Now,
	}
}

// Name returns the source name
func (s *ScreenCapture) Name() string {
	return "screen"
}

// Acquire captures the screen and PNG-encodes it
func (s *ScreenCapture) Acquire(ctx context.Context) (*ImageAsset, error) {
	if s.Confirm != nil && !s.Confirm() {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	grab := s.Grab
	if grab == nil {
		grab = screenshot.CaptureScreen
	}
	img, err := grab()
	if err != nil {
		return nil, failure.Acquisition("source.screen", fmt.Errorf("screen capture failed: %w", err))
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, failure.Acquisition("source.screen", fmt.Errorf("failed to encode capture: %w", err))
	}

	now := time.Now
	if s.now != nil {
		now = s.now
	}

	return &ImageAsset{
		Data:     buf.Bytes(),
		FileName: fmt.Sprintf("capture-%s.png", now().Format("20060102-150405")),
		Format:   "png",
	}, nil
}
