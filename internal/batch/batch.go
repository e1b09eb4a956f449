// Package batch reads batch files for the ocr command.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ImageEntry is one image to process with an optional target language
type ImageEntry struct {
	ImagePath string
	// TargetLang overrides the configured output language when set
	TargetLang string
}

// ReadBatchFile reads image entries from a file
// Supports formats:
// - Image path only: "menu.jpg" (uses the configured output language)
// - With target language: "menu.jpg = de"
// - Comments: "# anything" is skipped
// Relative paths are resolved against the batch file's directory.
func ReadBatchFile(filename string) ([]ImageEntry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	baseDir := filepath.Dir(filename)
	var entries []ImageEntry

	for _, line := range splitLines(string(content)) {
		line = trimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		path, lang := line, ""
		if i := strings.LastIndex(line, "="); i >= 0 {
			path = trimSpace(line[:i])
			lang = trimSpace(line[i+1:])
		}
		// Ignore lines with only a language
		if path == "" {
			continue
		}

		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		entries = append(entries, ImageEntry{ImagePath: path, TargetLang: lang})
	}

	return entries, nil
}

// splitLines splits a string by newlines
func splitLines(s string) []string {
	var lines []string
	current := ""
	for _, r := range s {
		if r == '\n' {
			lines = append(lines, current)
			current = ""
		} else if r != '\r' {
			current += string(r)
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// trimSpace trims whitespace from string
func trimSpace(s string) string {
	start := 0
	end := len(s)

	for start < end && isSpace(rune(s[start])) {
		start++
	}
	for end > start && isSpace(rune(s[end-1])) {
		end--
	}

	return s[start:end]
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
