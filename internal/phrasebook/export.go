package phrasebook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
)

// Export formats
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Entry is the readable part of a saved result, common to OCR and text results
type Entry struct {
	ID         string `json:"-"`
	InputLang  string `json:"inputLang"`
	OutputLang string `json:"outputLang"`
	InputText  string `json:"inputText"`
	OutputText string `json:"outputText"`
	ImageURL   string `json:"imageUrl"`
}

// DecodeEntry extracts the readable fields of a document
func DecodeEntry(doc *Document) (*Entry, error) {
	var entry Entry
	if err := json.Unmarshal(doc.Data, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode phrasebook entry %s: %w", doc.ID, err)
	}
	entry.ID = doc.ID
	return &entry, nil
}

// Export writes docs as a Markdown listing, as HTML rendered from it, or
// as an Anki CSV deck
func Export(w io.Writer, docs []*Document, format string) error {
	if format == FormatAnki {
		return writeAnki(w, docs)
	}

	var md bytes.Buffer
	if err := writeMarkdown(&md, docs); err != nil {
		return err
	}

	switch format {
	case "", FormatMarkdown:
		_, err := w.Write(md.Bytes())
		return err
	case FormatHTML:
		if err := goldmark.Convert(md.Bytes(), w); err != nil {
			return fmt.Errorf("failed to render HTML: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
}

func writeMarkdown(w io.Writer, docs []*Document) error {
	fmt.Fprintln(w, "# Phrasebook")

	for _, doc := range docs {
		entry, err := DecodeEntry(doc)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "\n## %s\n\n", entry.ID)
		if entry.InputLang != "" || entry.OutputLang != "" {
			fmt.Fprintf(w, "*%s → %s*\n\n", entry.InputLang, entry.OutputLang)
		}
		if entry.ImageURL != "" {
			fmt.Fprintf(w, "Image: <%s>\n\n", entry.ImageURL)
		}
		fmt.Fprintln(w, quote(entry.InputText))
		fmt.Fprintln(w)
		fmt.Fprintln(w, entry.OutputText)
	}
	return nil
}

// quote renders text as a Markdown block quote
func quote(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		lines[i] = "> " + strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}
