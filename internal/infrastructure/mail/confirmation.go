package mail

import (
	"bytes"
	htmltemplate "html/template"
	"net/url"
	"strings"
	"text/template"

	"github.com/gazette-dev/gazette/internal/core/ports"
)

const confirmationSubject = "Please verify your account"

var confirmationText = template.Must(template.New("text").Parse(`Hi,
Thanks for signing up! Please confirm your email address by clicking on the link below.

{{.Link}}

If you did not sign up for an account, please disregard this email.`))

var confirmationHTML = htmltemplate.Must(htmltemplate.New("html").Parse(`<!doctype html>` +
	`<html><head><title>Confirmation</title></head><body>` +
	`<p>Hi,<p>Thanks for signing up! Please confirm your email address by clicking on the link below.` +
	`<p><a href="{{.Link}}">{{.Link}}</a>` +
	`<p>If you did not sign up for an account, please disregard this email.` +
	`</body></html>`))

// ConfirmationTemplate renders the account confirmation email.
type ConfirmationTemplate struct {
	baseURL    string
	mailDomain string
}

// NewConfirmationTemplate builds links as {baseURL}/{invitation} and sends
// from confirmation@{mailDomain}.
func NewConfirmationTemplate(baseURL, mailDomain string) *ConfirmationTemplate {
	return &ConfirmationTemplate{baseURL: strings.TrimRight(baseURL, "/"), mailDomain: mailDomain}
}

// ConfirmationLink returns the URL that confirms invitation.
func (t *ConfirmationTemplate) ConfirmationLink(invitation string) string {
	return t.baseURL + "/" + url.PathEscape(invitation)
}

// ConfirmationEmail builds the email for recipient. Both bodies carry the
// same link.
func (t *ConfirmationTemplate) ConfirmationEmail(recipient, invitation string) ports.Email {
	data := struct{ Link string }{Link: t.ConfirmationLink(invitation)}

	var text, html bytes.Buffer
	// Execution can only fail on writer errors, which bytes.Buffer never returns.
	_ = confirmationText.Execute(&text, data)
	_ = confirmationHTML.Execute(&html, data)

	return ports.Email{
		From:    "Admin <confirmation@" + t.mailDomain + ">",
		To:      recipient,
		Subject: confirmationSubject,
		Text:    text.String(),
		HTML:    html.String(),
	}
}
