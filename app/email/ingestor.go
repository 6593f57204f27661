package email

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/inboxfolio/inboxfolio/app/database"
)

const (
	maxSubjectLength  = 500
	maxTextBodyLength = 50000
	maxHTMLBodyLength = 100000

	// maxSlugAttempts bounds the collision counter before falling back to
	// an epoch-millisecond suffix accepted without a further lookup.
	maxSlugAttempts = 1000
)

// emailPattern is deliberately loose: one or more non-space-non-@ runes,
// an @, a domain with at least one dot.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// receivedAtLayouts are the accepted inbound date formats, most specific
// first. Every accepted value is canonicalized to UTC at second precision.
var receivedAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Ingestor turns an untrusted inbound payload into a valid, uniquely-slugged
// email record. It is stateless per call; all persistent state lives behind
// the repository.
type Ingestor struct {
	repo database.EmailRepository
}

func NewIngestor(repo database.EmailRepository) *Ingestor {
	return &Ingestor{repo: repo}
}

// Run validates the payload, resolves a unique slug, normalizes fields and
// persists the record, returning the stored row with id and created_at
// populated.
//
// The collision loop is advisory: its lookups may race with other in-flight
// ingestions, and the store's unique index remains the authoritative guard.
// A residual duplicate at insert time surfaces as ErrSlugConflict.
func (i *Ingestor) Run(payload Payload) (*database.Email, error) {
	if err := validate(payload); err != nil {
		return nil, err
	}

	receivedAt, err := parseReceivedAt(payload.ReceivedAt)
	if err != nil {
		return nil, err
	}

	if err := validateLengths(payload); err != nil {
		return nil, err
	}

	slug := i.resolveSlug(Slugify(payload.Subject))

	stored, err := i.repo.InsertEmail(database.NewEmail{
		Subject:    strings.TrimSpace(payload.Subject),
		FromEmail:  strings.ToLower(strings.TrimSpace(payload.FromEmail)),
		ToEmail:    strings.ToLower(strings.TrimSpace(payload.ToEmail)),
		ReceivedAt: receivedAt,
		TextBody:   strings.TrimSpace(payload.TextBody),
		HTMLBody:   strings.TrimSpace(payload.HTMLBody),
		Slug:       slug,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicateSlug) {
			return nil, fmt.Errorf("%w: %q was claimed concurrently", ErrSlugConflict, slug)
		}
		return nil, fmt.Errorf("failed to store email: %w", err)
	}

	return stored, nil
}

func validate(payload Payload) error {
	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"subject", payload.Subject},
		{"from_email", payload.FromEmail},
		{"to_email", payload.ToEmail},
		{"received_at", payload.ReceivedAt},
	} {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}

	if !emailPattern.MatchString(payload.FromEmail) {
		return &InvalidEmailError{Field: "from_email"}
	}
	if !emailPattern.MatchString(payload.ToEmail) {
		return &InvalidEmailError{Field: "to_email"}
	}

	return nil
}

// validateLengths checks limits on the raw values, before trimming.
func validateLengths(payload Payload) error {
	if utf8.RuneCountInString(payload.Subject) > maxSubjectLength {
		return &ContentTooLongError{Field: "subject", Limit: maxSubjectLength}
	}
	if utf8.RuneCountInString(payload.TextBody) > maxTextBodyLength {
		return &ContentTooLongError{Field: "text_body", Limit: maxTextBodyLength}
	}
	if utf8.RuneCountInString(payload.HTMLBody) > maxHTMLBodyLength {
		return &ContentTooLongError{Field: "html_body", Limit: maxHTMLBodyLength}
	}
	return nil
}

func parseReceivedAt(value string) (time.Time, error) {
	for _, layout := range receivedAtLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC().Truncate(time.Second), nil
		}
	}
	return time.Time{}, &InvalidDateError{Value: value}
}

// resolveSlug finds an unclaimed slug candidate, starting from baseSlug and
// appending "-1", "-2", ... on collisions. After maxSlugAttempts lookups the
// counter scheme is abandoned for an epoch-millisecond suffix, accepted
// without a further existence check, so the loop always terminates.
func (i *Ingestor) resolveSlug(baseSlug string) string {
	candidate := baseSlug
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		existing, err := i.repo.GetEmailBySlug(candidate)
		if err != nil {
			// Fail open: a transient read failure must not block
			// ingestion. The unique index still rejects a real duplicate
			// at insert time.
			slog.Warn("Slug lookup failed, assuming candidate is available",
				"slug", candidate, "error", err)
			return candidate
		}
		if existing == nil {
			return candidate
		}
		candidate = baseSlug + "-" + strconv.Itoa(attempt)
	}

	return baseSlug + "-" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}
