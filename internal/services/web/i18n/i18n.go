// Package i18n provides locale resolution and message printing for the web service.
package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Localizer formats catalog keys into user-facing copy.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

var supported = []language.Tag{language.English}

var matcher = language.NewMatcher(supported)

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Default returns the default language tag.
func Default() language.Tag {
	return supported[0]
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// ResolveTag picks the best supported tag from Accept-Language.
func ResolveTag(r *http.Request) language.Tag {
	if r == nil {
		return Default()
	}
	accept := strings.TrimSpace(r.Header.Get("Accept-Language"))
	if accept == "" {
		return Default()
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return Default()
	}
	_, idx, _ := matcher.Match(tags...)
	return supported[idx]
}

// ForRequest resolves the request language and returns its printer and tag.
func ForRequest(r *http.Request) (Localizer, language.Tag) {
	tag := ResolveTag(r)
	return Printer(tag), tag
}
