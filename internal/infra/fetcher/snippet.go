package fetcher

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// SnippetMaxLen is the maximum rune length of a generated snippet.
const SnippetMaxLen = 200

// Snippet strips HTML markup from the given content and truncates
// the remaining text to maxLen runes, appending an ellipsis.
func Snippet(html string, maxLen int) string {
	text := stripHTML(html)
	text = strings.Join(strings.Fields(text), " ")

	if maxLen <= 0 || utf8.RuneCountInString(text) <= maxLen {
		return text
	}

	runes := []rune(text)
	return strings.TrimSpace(string(runes[:maxLen])) + "..."
}

func stripHTML(html string) string {
	if html == "" {
		return ""
	}
	if !strings.Contains(html, "<") {
		return html
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return doc.Text()
}
