package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrDuplicateSlug is returned by InsertEmail when the unique index on the
// slug column rejects the row. The unique index is the authoritative
// uniqueness guard: two concurrent inserts racing on the same slug result in
// exactly one success and one ErrDuplicateSlug.
var ErrDuplicateSlug = errors.New("slug already exists")

// Timestamps are stored as text. received_at is always written in RFC 3339
// UTC so lexicographic ordering matches chronological ordering; created_at
// comes from SQLite's CURRENT_TIMESTAMP.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

var _ EmailRepository = (*SQLiteEmailRepository)(nil)

// SQLiteEmailRepository handles database operations for email records
type SQLiteEmailRepository struct {
	db *DB
}

// NewEmailRepository creates a new email repository
func NewEmailRepository(db *DB) *SQLiteEmailRepository {
	return &SQLiteEmailRepository{db: db}
}

// GetAllEmails returns all emails sorted by received_at descending. The id
// tiebreak pins insertion order for records received at the same instant.
func (r *SQLiteEmailRepository) GetAllEmails() ([]Email, error) {
	rows, err := r.db.Query(`
		SELECT id, subject, from_email, to_email, received_at,
		       COALESCE(text_body, ''), COALESCE(html_body, ''),
		       slug, created_at
		FROM emails
		ORDER BY received_at DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get emails: %w", err)
	}
	defer rows.Close()

	var emails []Email
	for rows.Next() {
		email, err := scanEmail(rows)
		if err != nil {
			return nil, err
		}
		emails = append(emails, *email)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating email rows: %w", err)
	}

	return emails, nil
}

// GetEmailBySlug retrieves an email by its slug. Returns nil when no record
// matches; absence is not an error.
func (r *SQLiteEmailRepository) GetEmailBySlug(slug string) (*Email, error) {
	row := r.db.QueryRow(`
		SELECT id, subject, from_email, to_email, received_at,
		       COALESCE(text_body, ''), COALESCE(html_body, ''),
		       slug, created_at
		FROM emails
		WHERE slug = ?
	`, slug)

	email, err := scanEmail(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get email by slug: %w", err)
	}

	return email, nil
}

// InsertEmail persists a new email record and returns the stored row with
// the generated id and created_at.
func (r *SQLiteEmailRepository) InsertEmail(email NewEmail) (*Email, error) {
	result, err := r.db.Exec(`
		INSERT INTO emails (subject, from_email, to_email, received_at, text_body, html_body, slug)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, email.Subject, email.FromEmail, email.ToEmail,
		email.ReceivedAt.UTC().Format(time.RFC3339),
		email.TextBody, email.HTMLBody, email.Slug)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("failed to insert email: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted email id: %w", err)
	}

	return r.getEmailByID(id)
}

// GetEmailCount returns the total number of stored emails
func (r *SQLiteEmailRepository) GetEmailCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM emails").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get email count: %w", err)
	}
	return count, nil
}

func (r *SQLiteEmailRepository) getEmailByID(id int64) (*Email, error) {
	row := r.db.QueryRow(`
		SELECT id, subject, from_email, to_email, received_at,
		       COALESCE(text_body, ''), COALESCE(html_body, ''),
		       slug, created_at
		FROM emails
		WHERE id = ?
	`, id)

	email, err := scanEmail(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get email by id: %w", err)
	}

	return email, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmail(row rowScanner) (*Email, error) {
	var email Email
	var receivedAt, createdAt string

	err := row.Scan(
		&email.ID, &email.Subject, &email.FromEmail, &email.ToEmail,
		&receivedAt, &email.TextBody, &email.HTMLBody,
		&email.Slug, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan email row: %w", err)
	}

	if email.ReceivedAt, err = parseTimestamp(receivedAt); err != nil {
		return nil, fmt.Errorf("failed to parse received_at: %w", err)
	}
	if email.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return &email, nil
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
