package pipeline

import (
	"bytes"
	"fmt"
	"html/template"
	"log"

	"leadfinder/models"

	"github.com/getsentry/sentry-go"
	"gopkg.in/gomail.v2"
)

// Dispatcher performs outreach for a qualified lead. The batch processor
// only depends on this capability, never on delivery mechanics.
type Dispatcher interface {
	Dispatch(lead *models.Lead) error
}

// MockDispatcher simulates outreach without touching the network. It is the
// default mode; nothing is ever transmitted.
type MockDispatcher struct {
	Logger *log.Logger
}

func NewMockDispatcher(logger *log.Logger) *MockDispatcher {
	return &MockDispatcher{Logger: logger}
}

func (d *MockDispatcher) Dispatch(lead *models.Lead) error {
	if d.Logger != nil {
		d.Logger.Printf("[MOCK] email would be sent to %s (%s, score %d)", lead.Email, lead.Name, lead.Score)
	}
	return nil
}

// Embedded outreach template
var outreachTemplate = template.Must(template.New("outreach").Parse(`<!DOCTYPE html>
<html>
<body>
    <p>Dear {{.Name}},</p>

    <p>We've identified {{.Company}} as a potential partner for our enterprise solutions.</p>

    <p><strong>Your company profile:</strong><br>
    Industry: {{.Industry}}<br>
    Company Size: {{.CompanySize}}</p>

    <p>Our team would love to schedule a brief call to discuss how we can help
    {{.Company}} achieve its goals. Would you be available for a 15-minute call this week?</p>

    <p>Best regards,<br><strong>The LeadFinder Team</strong></p>

    <p style="font-size:12px;color:#7f8c8d">This is an automated message.
    If you wish to unsubscribe, please reply with "UNSUBSCRIBE".</p>
</body>
</html>`))

// SMTPDispatcher sends real outreach email over SMTP. Only wired when mock
// mode is explicitly disabled.
type SMTPDispatcher struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPDispatcher(host string, port int, username, password, from string) *SMTPDispatcher {
	return &SMTPDispatcher{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (d *SMTPDispatcher) Dispatch(lead *models.Lead) error {
	var body bytes.Buffer
	if err := outreachTemplate.Execute(&body, lead); err != nil {
		return fmt.Errorf("failed to render outreach template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", d.from)
	m.SetHeader("To", lead.Email)
	m.SetHeader("Subject", fmt.Sprintf("Partnership Opportunity - %s", lead.Company))
	m.SetBody("text/html", body.String())

	sentry.AddBreadcrumb(&sentry.Breadcrumb{
		Category: "outreach",
		Message:  fmt.Sprintf("dispatching to %s", lead.Email),
		Level:    sentry.LevelInfo,
	})

	if err := d.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send outreach email: %w", err)
	}
	return nil
}
