package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"strings"

	"github.com/resend/resend-go/v2"

	"chatman_legal_go/config"
	"chatman_legal_go/models"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)
	fromAddress := fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom)

	params := &resend.SendEmailRequest{
		From:    fromAddress,
		To:      email.To,
		Subject: email.Subject,
	}
	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}
	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %v", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// SendEmailAsync sends an email asynchronously using a goroutine.
// This is the recommended method in handlers to avoid blocking HTTP responses.
func SendEmailAsync(cfg *config.Config, email *Email) {
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func(cfg *config.Config, email *Email) {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}(cfg, emailCopy)
}

// logEmailToConsole logs email details to console in development mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\n📧 EMAIL (Development Mode - Not Actually Sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("%s\n", separator)
}

func renderTemplate(tmpl *template.Template, data interface{}) string {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Printf("Error rendering email template %s: %v", tmpl.Name(), err)
		return ""
	}
	return buf.String()
}

var leadNotificationTmpl = template.Must(template.New("lead_notification").Parse(`
<h2>New Lead: {{.Name}}</h2>
<table>
  <tr><td><strong>Email</strong></td><td>{{.Email}}</td></tr>
  <tr><td><strong>Phone</strong></td><td>{{.Phone}}</td></tr>
  <tr><td><strong>Practice Area</strong></td><td>{{.PracticeArea}}</td></tr>
  <tr><td><strong>Source</strong></td><td>{{.Source}}</td></tr>
</table>
<p>{{.Message}}</p>
`))

// BuildLeadNotificationEmail creates the staff notification for a new inbound lead
func BuildLeadNotificationEmail(toEmail string, lead *models.Lead) *Email {
	data := struct {
		Name, Email, Phone, PracticeArea, Source, Message string
	}{
		Name:         lead.FullName(),
		Email:        lead.Email,
		Phone:        lead.Phone,
		PracticeArea: lead.PracticeArea,
		Source:       lead.Source,
		Message:      lead.Message,
	}

	return &Email{
		To:       []string{toEmail},
		Subject:  fmt.Sprintf("New lead: %s (%s)", lead.FullName(), lead.Source),
		HTMLBody: renderTemplate(leadNotificationTmpl, data),
		TextBody: fmt.Sprintf("New lead %s\nEmail: %s\nPhone: %s\nPractice area: %s\nSource: %s\n\n%s",
			lead.FullName(), lead.Email, lead.Phone, lead.PracticeArea, lead.Source, lead.Message),
	}
}

var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<h2>Welcome to {{.FirmName}}, {{.UserName}}</h2>
<p>Your client portal account is ready. You can track your cases, message your
attorney, and manage appointments from your dashboard.</p>
<p>If you did not create this account, call us at {{.FirmPhone}}.</p>
`))

// BuildWelcomeEmail creates a welcome email for newly registered portal clients
func BuildWelcomeEmail(cfg *config.Config, userEmail, userName string) *Email {
	data := struct {
		UserName, FirmName, FirmPhone string
	}{
		UserName:  userName,
		FirmName:  cfg.FirmName,
		FirmPhone: cfg.FirmPhone,
	}

	return &Email{
		To:       []string{userEmail},
		Subject:  fmt.Sprintf("Welcome to %s", cfg.FirmName),
		HTMLBody: renderTemplate(welcomeTmpl, data),
		TextBody: fmt.Sprintf("Welcome to %s, %s. Your client portal account is ready.", cfg.FirmName, userName),
	}
}

var appointmentConfirmationTmpl = template.Must(template.New("appointment_confirmation").Parse(`
<h2>Appointment confirmed</h2>
<p>{{.ClientName}}, your appointment with {{.AttorneyName}} is scheduled for
{{.When}}{{if .Location}} at {{.Location}}{{end}}.</p>
<p>Need to reschedule? Call {{.FirmPhone}}.</p>
`))

// BuildAppointmentConfirmationEmail creates a confirmation email for a scheduled appointment
func BuildAppointmentConfirmationEmail(cfg *config.Config, clientEmail, clientName, attorneyName, when, location string) *Email {
	data := struct {
		ClientName, AttorneyName, When, Location, FirmPhone string
	}{
		ClientName:   clientName,
		AttorneyName: attorneyName,
		When:         when,
		Location:     location,
		FirmPhone:    cfg.FirmPhone,
	}

	return &Email{
		To:       []string{clientEmail},
		Subject:  fmt.Sprintf("Appointment confirmed: %s", when),
		HTMLBody: renderTemplate(appointmentConfirmationTmpl, data),
		TextBody: fmt.Sprintf("%s, your appointment with %s is scheduled for %s.", clientName, attorneyName, when),
	}
}
