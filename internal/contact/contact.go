// Package contact turns the contact form into a pre-filled email compose
// action. Nothing is sent from the server.
package contact

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const gmailCompose = "https://mail.google.com/mail/?view=cm&fs=1"

// ErrMissingField is returned by Validate when a required field is blank.
var ErrMissingField = errors.New("missing required field")

// Fields are the submitted form values.
type Fields struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Message string `form:"message"`
}

// Validate checks that every field is present.
func (f Fields) Validate() error {
	var missing []string
	if strings.TrimSpace(f.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(f.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(f.Message) == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	return nil
}

// Action is a compose action in both of its forms.
type Action struct {
	Subject string
	Body    string
	// WebURL opens the web mail compose view.
	WebURL string
	// Mailto hands off to the system mail client.
	Mailto string
}

// Compose builds the compose action for f addressed to recipient.
func Compose(f Fields, recipient string) Action {
	name := f.Name
	if strings.TrimSpace(name) == "" {
		name = "Recruiter"
	}
	subject := "Portfolio Inquiry from " + name
	body := fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", f.Name, f.Email, f.Message)
	return Action{
		Subject: subject,
		Body:    body,
		WebURL:  WebComposeURL(recipient, subject, body),
		Mailto:  MailtoURL(recipient, subject, body),
	}
}

// WebComposeURL is the Gmail compose link for the given message.
func WebComposeURL(to, subject, body string) string {
	return gmailCompose +
		"&to=" + Escape(to) +
		"&su=" + Escape(subject) +
		"&body=" + Escape(body)
}

// MailtoURL is the mailto: link for the given message.
func MailtoURL(to, subject, body string) string {
	return "mailto:" + to + "?subject=" + Escape(subject) + "&body=" + Escape(body)
}

// Escape percent-encodes s for a URL component, with spaces as %20 as mail
// clients expect.
func Escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
