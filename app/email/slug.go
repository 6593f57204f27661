package email

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fallbackSlug is the base used when a subject reduces to nothing,
// e.g. "!!!" or an all-punctuation subject.
const fallbackSlug = "email"

// removedChars are dropped outright before hyphenation, so "Re: What's up"
// becomes "re-whats-up" rather than "re-what-s-up".
const removedChars = `*+~.()'"!:@`

// deaccent folds accented letters to their ASCII base (é -> e) by
// decomposing and stripping combining marks.
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a URL-safe base slug from an email subject: lower-case,
// fold diacritics, drop the removed character set, collapse every remaining
// non-alphanumeric run into a single hyphen and trim leading/trailing
// hyphens. The result is deterministic; uniqueness is the caller's problem.
func Slugify(subject string) string {
	if folded, _, err := transform.String(deaccent, subject); err == nil {
		subject = folded
	}

	var b strings.Builder
	b.Grow(len(subject))

	lastWasHyphen := false
	for _, r := range strings.ToLower(subject) {
		switch {
		case strings.ContainsRune(removedChars, r):
			// removed, not a separator
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastWasHyphen = false
		default:
			if !lastWasHyphen {
				b.WriteRune('-')
				lastWasHyphen = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return fallbackSlug
	}
	return slug
}
