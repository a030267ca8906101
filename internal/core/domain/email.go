package domain

import "strings"

// Email is the unit submitted for classification. Either field may be empty.
type Email struct {
	Subject string
	Body    string
}

// CombinedText joins the trimmed subject and body with a single space and trims
// the result, so an email with only one populated field classifies on that field alone.
func (e Email) CombinedText() string {
	return strings.TrimSpace(strings.TrimSpace(e.Subject) + " " + strings.TrimSpace(e.Body))
}
