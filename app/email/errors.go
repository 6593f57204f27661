package email

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSlugConflict is returned when the store's unique index rejects the
// resolved slug despite the collision loop, i.e. another ingestion claimed
// the same slug between our lookup and our insert. Callers may resubmit.
var ErrSlugConflict = errors.New("slug conflict")

// MissingFieldsError names the required payload fields that are absent.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// InvalidEmailError reports an address field that does not match the
// local@domain.tld shape.
type InvalidEmailError struct {
	Field string
}

func (e *InvalidEmailError) Error() string {
	return fmt.Sprintf("invalid email format for %s", e.Field)
}

// InvalidDateError reports an unparseable received_at value.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date format for received_at: %q", e.Value)
}

// ContentTooLongError reports a field exceeding its character limit.
type ContentTooLongError struct {
	Field string
	Limit int
}

func (e *ContentTooLongError) Error() string {
	return fmt.Sprintf("%s too long (max %d characters)", e.Field, e.Limit)
}

// IsValidationError reports whether err is a caller-correctable input
// error, as opposed to a storage failure or a slug conflict.
func IsValidationError(err error) bool {
	var missingErr *MissingFieldsError
	var emailErr *InvalidEmailError
	var dateErr *InvalidDateError
	var lengthErr *ContentTooLongError
	return errors.As(err, &missingErr) || errors.As(err, &emailErr) ||
		errors.As(err, &dateErr) || errors.As(err, &lengthErr)
}
