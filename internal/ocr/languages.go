package ocr

import (
	"golang.org/x/text/language"
)

// defaultLanguage is used when the source language has no OCR.space code
const defaultLanguage = "eng"

// ocrSpaceLanguages maps base languages to OCR.space language codes
var ocrSpaceLanguages = map[string]string{
	"ar": "ara",
	"bg": "bul",
	"cs": "cze",
	"da": "dan",
	"de": "ger",
	"el": "gre",
	"en": "eng",
	"es": "spa",
	"fi": "fin",
	"fr": "fre",
	"hr": "hrv",
	"hu": "hun",
	"it": "ita",
	"ja": "jpn",
	"ko": "kor",
	"nl": "dut",
	"pl": "pol",
	"pt": "por",
	"ru": "rus",
	"sl": "slv",
	"sv": "swe",
	"tr": "tur",
}

// ToOCRSpaceLanguage maps a language identifier such as "de", "pt-BR" or
// "zh-TW" to the code the OCR service expects
func ToOCRSpaceLanguage(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return defaultLanguage
	}

	base, _ := tag.Base()
	if base.String() == "zh" {
		script, _ := tag.Script()
		if script.String() == "Hant" {
			return "cht"
		}
		return "chs"
	}

	if code, ok := ocrSpaceLanguages[base.String()]; ok {
		return code
	}
	return defaultLanguage
}
