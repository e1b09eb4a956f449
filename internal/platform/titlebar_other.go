//go:build !windows

package platform

import (
	"log/slog"

	"github.com/lucasb-eyer/go-colorful"
)

type noopTitleBar struct {
	logger *slog.Logger
}

// NewTitleBar returns a title bar that only logs; terminals outside
// Windows expose no title bar colour API
func NewTitleBar(logger *slog.Logger) TitleBar {
	return &noopTitleBar{logger: logger}
}

func (t *noopTitleBar) SetTitleBarColors(bg colorful.Color) error {
	t.logger.Debug("Title bar colours not supported on this platform", "background", bg.Hex())
	return nil
}
