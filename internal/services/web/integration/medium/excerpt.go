package medium

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Excerpt flattens an HTML fragment to its visible text and truncates it to
// at most limit runes on a word boundary.
func Excerpt(fragment string, limit int) string {
	text := visibleText(fragment)
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:limit])
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

func visibleText(fragment string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	skipDepth := 0
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "script", "style", "figure":
				skipDepth++
			case "p", "br", "li", "h1", "h2", "h3", "h4":
				b.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "script", "style", "figure":
				if skipDepth > 0 {
					skipDepth--
				}
			case "p", "li", "h1", "h2", "h3", "h4":
				b.WriteByte(' ')
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(tokenizer.Text())
			}
		}
	}
}
