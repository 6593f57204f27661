package database

import (
	"time"
)

// Email is a stored email record.
type Email struct {
	ID         int64
	Subject    string
	FromEmail  string
	ToEmail    string
	ReceivedAt time.Time
	TextBody   string
	HTMLBody   string
	Slug       string // URL-safe, unique across all records, immutable
	CreatedAt  time.Time
}

// NewEmail is a validated, normalized record ready for insertion. ID and
// CreatedAt are assigned by the store.
type NewEmail struct {
	Subject    string
	FromEmail  string
	ToEmail    string
	ReceivedAt time.Time
	TextBody   string
	HTMLBody   string
	Slug       string
}
