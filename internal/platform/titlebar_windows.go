//go:build windows

package platform

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/sys/windows"
)

const (
	dwmwaCaptionColor = 35
	dwmwaTextColor    = 36
)

type consoleTitleBar struct {
	logger *slog.Logger
}

// NewTitleBar returns the title bar of the console window
func NewTitleBar(logger *slog.Logger) TitleBar {
	return &consoleTitleBar{logger: logger}
}

// SetTitleBarColors sets caption and text colours through DWM. Requires
// Windows 11; older versions return an error HRESULT.
func (t *consoleTitleBar) SetTitleBarColors(bg colorful.Color) error {
	kernel32 := windows.NewLazySystemDLL("kernel32.dll")
	getConsoleWindow := kernel32.NewProc("GetConsoleWindow")

	hwnd, _, _ := getConsoleWindow.Call()
	if hwnd == 0 {
		t.logger.Debug("No console window, skipping title bar colours")
		return nil
	}

	dwmapi := windows.NewLazySystemDLL("dwmapi.dll")
	setAttribute := dwmapi.NewProc("DwmSetWindowAttribute")
	if err := setAttribute.Find(); err != nil {
		return fmt.Errorf("DwmSetWindowAttribute unavailable: %w", err)
	}

	for _, attr := range []struct {
		id    uintptr
		color colorful.Color
	}{
		{dwmwaCaptionColor, bg},
		{dwmwaTextColor, Foreground(bg)},
	} {
		ref := colorRef(attr.color)
		hr, _, _ := setAttribute.Call(hwnd, attr.id, uintptr(unsafe.Pointer(&ref)), unsafe.Sizeof(ref))
		if hr != 0 {
			return fmt.Errorf("DwmSetWindowAttribute(%d) failed: HRESULT 0x%x", attr.id, hr)
		}
	}

	t.logger.Debug("Title bar colours set", "background", bg.Hex())
	return nil
}
