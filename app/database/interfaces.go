package database

type EmailRepository interface {
	// GetAllEmails returns every stored email, most recently received
	// first. Ties on received_at keep insertion order.
	GetAllEmails() ([]Email, error)

	// GetEmailBySlug returns the email with the given slug, or nil when no
	// record matches. The slug is an opaque exact-match key.
	GetEmailBySlug(slug string) (*Email, error)

	// InsertEmail persists a new record and returns it with ID and
	// CreatedAt populated. A slug already present in the store surfaces as
	// ErrDuplicateSlug.
	InsertEmail(email NewEmail) (*Email, error)

	GetEmailCount() (int, error)
}
