package platform

import (
	"fmt"
	"log/slog"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultPrimaryColor is the theme colour used when none is configured
const DefaultPrimaryColor = "#1976d2"

// TitleBar colours the title bar of the window hosting the application
type TitleBar interface {
	SetTitleBarColors(bg colorful.Color) error
}

// ParseColor parses a #rrggbb or #rgb colour
func ParseColor(hex string) (colorful.Color, error) {
	if len(hex) == 4 && hex[0] == '#' {
		hex = string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid colour %q: %w", hex, err)
	}
	return c, nil
}

// Foreground returns black or white, whichever reads better on bg
func Foreground(bg colorful.Color) colorful.Color {
	l, _, _ := bg.Lab()
	if l > 0.6 {
		return colorful.Color{R: 0, G: 0, B: 0}
	}
	return colorful.Color{R: 1, G: 1, B: 1}
}

// colorRef packs c as a Win32 COLORREF (0x00BBGGRR)
func colorRef(c colorful.Color) uint32 {
	r, g, b := c.Clamped().RGB255()
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16
}

// ApplyTheme parses hex and colours the title bar. Failures are logged,
// never fatal.
func ApplyTheme(tb TitleBar, hex string, logger *slog.Logger) {
	if hex == "" {
		hex = DefaultPrimaryColor
	}
	bg, err := ParseColor(hex)
	if err != nil {
		logger.Warn("Ignoring theme colour", "error", err)
		return
	}
	if err := tb.SetTitleBarColors(bg); err != nil {
		logger.Debug("Title bar colours not applied", "error", err)
	}
}
