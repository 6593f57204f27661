package email

// Payload is the untrusted inbound shape accepted by POST /api/emails.
// TextBody and HTMLBody are optional and default to empty strings.
type Payload struct {
	Subject    string `json:"subject" yaml:"subject"`
	FromEmail  string `json:"from_email" yaml:"from_email"`
	ToEmail    string `json:"to_email" yaml:"to_email"`
	ReceivedAt string `json:"received_at" yaml:"received_at"`
	TextBody   string `json:"text_body" yaml:"text_body"`
	HTMLBody   string `json:"html_body" yaml:"html_body"`
}
