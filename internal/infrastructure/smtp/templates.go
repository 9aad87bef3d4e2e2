package smtp

import (
	"bytes"
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

var tmpl = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// TicketConfirmation carries the fields rendered into the confirmation email.
type TicketConfirmation struct {
	Email       string
	Title       string
	ReferenceID string
	SubmittedAt time.Time
}

// RenderOTP renders the verification-code email body.
func RenderOTP(code string, ttl time.Duration) (string, error) {
	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "otp_code.html", struct {
		Code       string
		TTLMinutes int
	}{Code: code, TTLMinutes: int(ttl.Minutes())})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderTicketConfirmation renders the support-request confirmation email body.
func RenderTicketConfirmation(tc TicketConfirmation) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "ticket_confirmation.html", tc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
