package translation

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// SupportedLanguages lists the language identifiers offered to users
var SupportedLanguages = []string{
	"ar", "bg", "cs", "da", "de", "el", "en", "es", "fi", "fr", "hr", "hu",
	"it", "ja", "ko", "nl", "pl", "pt", "ru", "sl", "sv", "tr", "zh-Hans", "zh-Hant",
}

// NormalizeLanguage validates a language identifier and returns its
// canonical BCP 47 form
func NormalizeLanguage(lang string) (string, error) {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		return "", fmt.Errorf("unknown language %q: %w", lang, err)
	}
	return tag.String(), nil
}

// DisplayName returns the English name of a language identifier, or the
// identifier itself when it cannot be parsed
func DisplayName(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return lang
	}
	name := display.English.Tags().Name(tag)
	if name == "" {
		return lang
	}
	return name
}

// SelfName returns the language's name in that language, e.g. "Deutsch"
func SelfName(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return lang
	}
	return display.Self.Name(tag)
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
