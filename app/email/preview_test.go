package email

import (
	"strings"
	"testing"

	"github.com/inboxfolio/inboxfolio/app/database"
)

func TestExcerptPrefersTextBody(t *testing.T) {
	e := database.Email{
		TextBody: "Plain text wins.",
		HTMLBody: "<p>HTML should be ignored</p>",
	}

	got := Excerpt(e, 160)
	if got != "Plain text wins." {
		t.Errorf("Expected text body excerpt, got '%s'", got)
	}
}

func TestExcerptCollapsesWhitespace(t *testing.T) {
	e := database.Email{TextBody: "Hi there,\n\nWe were   impressed by your portfolio."}

	got := Excerpt(e, 160)
	if got != "Hi there, We were impressed by your portfolio." {
		t.Errorf("Unexpected excerpt: '%s'", got)
	}
}

func TestExcerptTruncates(t *testing.T) {
	e := database.Email{TextBody: strings.Repeat("word ", 100)}

	got := Excerpt(e, 20)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Expected truncated excerpt to end with ellipsis, got '%s'", got)
	}
	if len([]rune(got)) > 23 {
		t.Errorf("Excerpt too long: %d runes", len([]rune(got)))
	}
}

func TestExcerptFallsBackToHTMLBody(t *testing.T) {
	e := database.Email{
		HTMLBody: "<p>Hi there,</p><p>We were impressed by your <strong>portfolio</strong> and would love to discuss a position with our team.</p><p>Best regards,<br>Sarah</p>",
	}

	got := Excerpt(e, 300)
	if !strings.Contains(got, "impressed by your") {
		t.Errorf("Expected excerpt derived from HTML body, got '%s'", got)
	}
	if strings.Contains(got, "<p>") || strings.Contains(got, "<strong>") {
		t.Errorf("Excerpt still contains markup: '%s'", got)
	}
}

func TestExcerptEmptyEmail(t *testing.T) {
	if got := Excerpt(database.Email{}, 160); got != "" {
		t.Errorf("Expected empty excerpt for empty email, got '%s'", got)
	}
}
