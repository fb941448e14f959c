package notify

import (
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPEmailGateway implements email sending over plain SMTP with
// optional AUTH. It keeps no connection state; each send dials fresh.
type SMTPEmailGateway struct {
	host string
	port int
	user string
	pass string
	from string
}

// SMTPConfig holds configuration for the SMTP email gateway
type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
}

// NewSMTPEmailGateway creates a new SMTP email gateway
func NewSMTPEmailGateway(config SMTPConfig) *SMTPEmailGateway {
	return &SMTPEmailGateway{
		host: config.Host,
		port: config.Port,
		user: config.Username,
		pass: config.Password,
		from: config.FromAddress,
	}
}

// SendEmail sends a plain-text email to a single recipient
func (g *SMTPEmailGateway) SendEmail(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", g.host, g.port)

	var auth smtp.Auth
	if g.user != "" {
		auth = smtp.PlainAuth("", g.user, g.pass, g.host)
	}

	msg := strings.Join([]string{
		"From: " + g.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(addr, auth, g.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", to, err)
	}

	return nil
}

// GetName returns the gateway name
func (g *SMTPEmailGateway) GetName() string {
	return "SMTP"
}
