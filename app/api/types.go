package api

import (
	"time"

	"github.com/inboxfolio/inboxfolio/app/database"
	"github.com/inboxfolio/inboxfolio/app/email"
)

type Handler struct {
	emailRepo database.EmailRepository
	ingestor  *email.Ingestor
}

// EmailResponse is the stored-record shape crossing the API boundary.
// Timestamps are canonical RFC 3339 UTC strings.
type EmailResponse struct {
	ID         int64  `json:"id"`
	Subject    string `json:"subject"`
	FromEmail  string `json:"from_email"`
	ToEmail    string `json:"to_email"`
	ReceivedAt string `json:"received_at"`
	TextBody   string `json:"text_body"`
	HTMLBody   string `json:"html_body"`
	Slug       string `json:"slug"`
	CreatedAt  string `json:"created_at"`
}

// EmailSummary is one listing entry: the record plus a plain-text excerpt
// for gallery cards.
type EmailSummary struct {
	EmailResponse
	Excerpt string `json:"excerpt"`
}

func newEmailResponse(e database.Email) EmailResponse {
	return EmailResponse{
		ID:         e.ID,
		Subject:    e.Subject,
		FromEmail:  e.FromEmail,
		ToEmail:    e.ToEmail,
		ReceivedAt: e.ReceivedAt.UTC().Format(time.RFC3339),
		TextBody:   e.TextBody,
		HTMLBody:   e.HTMLBody,
		Slug:       e.Slug,
		CreatedAt:  e.CreatedAt.UTC().Format(time.RFC3339),
	}
}
