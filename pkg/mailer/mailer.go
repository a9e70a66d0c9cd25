package mailer

import (
	"fmt"
	"net/smtp"
)

// Config holds SMTP connection details.
type Config struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// Mailer sends transactional HTML email over SMTP.
type Mailer struct {
	cfg Config
}

// New creates a Mailer from the given config.
func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send delivers a single HTML email.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)

	msg := []byte(
		"From: " + m.cfg.From + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"\r\n" +
			htmlBody,
	)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

// NiceEmail wraps a message body in the store's email template.
func NiceEmail(text string) string {
	return fmt.Sprintf(`
  <div class="email" style="
    border: 1px solid black;
    padding: 20px;
    font-family: sans-serif;
    line-height: 2;
    font-size: 20px;
  ">
    <h2>Hello There!</h2>
    <p>%s</p>

    <p>The Co-Sign Team</p>
  </div>
`, text)
}
