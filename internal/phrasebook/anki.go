package phrasebook

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// FormatAnki is a CSV deck that Anki imports with front and back fields
const FormatAnki = "anki"

// writeAnki writes one card per entry: the input on the front, the
// translation on the back, and the language pair as tags
func writeAnki(w io.Writer, docs []*Document) error {
	writer := csv.NewWriter(w)

	headers := []string{"Front", "Back", "Image", "Tags"}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for _, doc := range docs {
		entry, err := DecodeEntry(doc)
		if err != nil {
			return err
		}

		record := []string{
			ankiText(entry.InputText),
			ankiText(entry.OutputText),
			formatImageField(entry.ImageURL),
			ankiTags(entry),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ankiText keeps line breaks visible in the card
func ankiText(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "<br>")
}

// formatImageField references the image by file name, as Anki expects
// media in its collection folder
func formatImageField(imageURL string) string {
	if imageURL == "" {
		return ""
	}
	return fmt.Sprintf(`<img src="%s">`, filepath.Base(imageURL))
}

func ankiTags(entry *Entry) string {
	tags := []string{"lenslate"}
	if entry.InputLang != "" && entry.OutputLang != "" {
		tags = append(tags, entry.InputLang+"_"+entry.OutputLang)
	}
	return strings.Join(tags, " ")
}
