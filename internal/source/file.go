package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/lenslate/internal/failure"
)

// DefaultMaxFileSize bounds files read by the picker
const DefaultMaxFileSize = 5 * 1024 * 1024 // 5MB, the free OCR tier limit

// FilePicker reads an image from disk. With an empty Path it prompts for
// one on In; an empty answer cancels.
type FilePicker struct {
	Path        string
	In          io.Reader
	Out         io.Writer
	MaxFileSize int64
}

// NewFilePicker creates a picker for a preset path. Pass an empty path to
// prompt on stdin.
func NewFilePicker(path string) *FilePicker {
	return &FilePicker{
		Path:        path,
		In:          os.Stdin,
		Out:         os.Stderr,
		MaxFileSize: DefaultMaxFileSize,
	}
}

// Name returns the source name
func (p *FilePicker) Name() string {
	return "file"
}

// Acquire reads and validates the chosen file
func (p *FilePicker) Acquire(ctx context.Context) (*ImageAsset, error) {
	path := p.Path
	if path == "" {
		var err error
		path, err = p.prompt()
		if err != nil {
			return nil, failure.Acquisition("source.file", err)
		}
		if path == "" {
			return nil, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := p.readFile(path)
	if err != nil {
		return nil, failure.Acquisition("source.file", err)
	}

	format, err := DetectFormat(data)
	if err != nil {
		return nil, failure.Acquisition("source.file", fmt.Errorf("%s: %w", path, err))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	return &ImageAsset{
		Data:     data,
		FileName: filepath.Base(path),
		Path:     abs,
		Format:   format,
	}, nil
}

func (p *FilePicker) prompt() (string, error) {
	if p.In == nil {
		return "", nil
	}
	if p.Out != nil {
		fmt.Fprint(p.Out, "Image file (empty to cancel): ")
	}

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file name: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (p *FilePicker) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if p.MaxFileSize > 0 && info.Size() > p.MaxFileSize {
		return nil, fmt.Errorf("image exceeds maximum size of %d bytes", p.MaxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}
