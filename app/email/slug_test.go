package email

import (
	"testing"
)

func TestSlugifyDeterminism(t *testing.T) {
	got := Slugify("Senior Frontend Developer Position - TechCorp")
	want := "senior-frontend-developer-position-techcorp"
	if got != want {
		t.Errorf("Expected slug '%s', got '%s'", want, got)
	}

	// Same input, same output
	if again := Slugify("Senior Frontend Developer Position - TechCorp"); again != got {
		t.Errorf("Slugify is not deterministic: '%s' vs '%s'", got, again)
	}
}

func TestSlugifyRemovedCharacters(t *testing.T) {
	// Characters in the removed set disappear without becoming separators
	got := Slugify("Re: What's up?!")
	want := "re-whats-up"
	if got != want {
		t.Errorf("Expected slug '%s', got '%s'", want, got)
	}

	if got := Slugify("v1.2.3 release"); got != "v123-release" {
		t.Errorf("Expected slug 'v123-release', got '%s'", got)
	}
}

func TestSlugifyCollapsesSeparatorRuns(t *testing.T) {
	got := Slugify("hello   ---   world")
	want := "hello-world"
	if got != want {
		t.Errorf("Expected slug '%s', got '%s'", want, got)
	}
}

func TestSlugifyTrimsHyphens(t *testing.T) {
	got := Slugify("--hello--")
	want := "hello"
	if got != want {
		t.Errorf("Expected slug '%s', got '%s'", want, got)
	}
}

func TestSlugifyDiacritics(t *testing.T) {
	got := Slugify("Café Résumé")
	want := "cafe-resume"
	if got != want {
		t.Errorf("Expected slug '%s', got '%s'", want, got)
	}
}

func TestSlugifyNumbers(t *testing.T) {
	got := Slugify("Speaking Invitation - ReactConf 2024")
	want := "speaking-invitation-reactconf-2024"
	if got != want {
		t.Errorf("Expected slug '%s', got '%s'", want, got)
	}
}

func TestSlugifyEmptyFallback(t *testing.T) {
	// Subjects that reduce to nothing fall back to a constant base
	for _, subject := range []string{"", "!!!", "***", ":@~."} {
		if got := Slugify(subject); got != "email" {
			t.Errorf("Expected fallback slug 'email' for subject %q, got '%s'", subject, got)
		}
	}
}
