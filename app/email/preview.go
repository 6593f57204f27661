package email

import (
	"strings"

	readability "github.com/go-shiori/go-readability"

	"github.com/inboxfolio/inboxfolio/app/database"
)

// Excerpt returns a plain-text preview of at most limit runes for listing
// views. The text body wins when present; otherwise the HTML body is run
// through readability, with a crude tag strip as a last resort for fragments
// readability rejects.
func Excerpt(e database.Email, limit int) string {
	text := e.TextBody

	if text == "" && e.HTMLBody != "" {
		if article, err := readability.FromReader(strings.NewReader(e.HTMLBody), nil); err == nil && article.TextContent != "" {
			text = article.TextContent
		} else {
			text = stripTags(e.HTMLBody)
		}
	}

	text = strings.Join(strings.Fields(text), " ")

	r := []rune(text)
	if len(r) <= limit {
		return text
	}
	return strings.TrimSpace(string(r[:limit])) + "..."
}

// stripTags drops everything between < and > and inserts spaces so adjacent
// block elements don't run together. Not a sanitizer, only a preview helper.
func stripTags(html string) string {
	var b strings.Builder
	b.Grow(len(html))

	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
			b.WriteRune(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}

	return b.String()
}
