package cli

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"codeberg.org/snonux/lenslate/internal/alert"
)

var (
	alertLanguages = []language.Tag{language.English, language.German, language.French, language.Spanish}
	alertMatcher   = language.NewMatcher(alertLanguages)
	alertCatalog   = newAlertCatalog()
)

var alertTexts = map[alert.Key][]string{
	alert.CannotRecognizeImage: {
		"Cannot recognize the image. Try a sharper picture or another input language.",
		"Das Bild kann nicht erkannt werden. Versuche ein schärferes Bild oder eine andere Eingabesprache.",
		"Impossible de reconnaître l'image. Essayez une image plus nette ou une autre langue source.",
		"No se puede reconocer la imagen. Prueba con una imagen más nítida u otro idioma de entrada.",
	},
	alert.CannotConnectToServer: {
		"Cannot connect to the server. Check your connection and try again.",
		"Keine Verbindung zum Server. Prüfe deine Verbindung und versuche es erneut.",
		"Impossible de se connecter au serveur. Vérifiez votre connexion et réessayez.",
		"No se puede conectar con el servidor. Comprueba tu conexión e inténtalo de nuevo.",
	},
	alert.CannotOpenTheFile: {
		"Cannot open the file.",
		"Die Datei kann nicht geöffnet werden.",
		"Impossible d'ouvrir le fichier.",
		"No se puede abrir el archivo.",
	},
}

func newAlertCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, texts := range alertTexts {
		for i, text := range texts {
			if err := b.SetString(alertLanguages[i], string(key), text); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// AlertMessage returns the text of an alert in the given locale, falling
// back to English
func AlertMessage(locale string, key alert.Key) string {
	tag := language.English
	if requested, err := language.Parse(locale); err == nil {
		_, index, confidence := alertMatcher.Match(requested)
		if confidence != language.No {
			tag = alertLanguages[index]
		}
	}

	p := message.NewPrinter(tag, message.Catalog(alertCatalog))
	return p.Sprintf(string(key))
}
