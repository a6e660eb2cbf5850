// Package mail delivers account lifecycle email over a plain SMTP
// relay. Deployments run a local relay, so there is no provider SDK
// here on purpose.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Config holds SMTP relay settings.
type Config struct {
	Host string
	Port string
	From string
	User string
	Pass string
}

// Mailer sends portal email through an SMTP relay.
type Mailer struct {
	cfg Config
}

func NewMailer(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendActivation mails the account activation link.
func (m *Mailer) SendActivation(ctx context.Context, to, memberName, activationURL string) error {
	body := fmt.Sprintf(activationTemplate, memberName, activationURL)
	return m.send(ctx, to, "Activate your member portal account", body)
}

// SendPasswordReset mails the password reset link.
func (m *Mailer) SendPasswordReset(ctx context.Context, to, memberName, resetURL string) error {
	body := fmt.Sprintf(resetTemplate, memberName, resetURL)
	return m.send(ctx, to, "Reset your member portal password", body)
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	addr := m.cfg.Host + ":" + m.cfg.Port
	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

const activationTemplate = `Dear %s,

Thank you for registering for the member portal.

Activate your account by following this link:

    %s

The link is valid for 7 days. If you did not register, you can ignore
this message.
`

const resetTemplate = `Dear %s,

A password reset was requested for your member portal account.

Set a new password by following this link:

    %s

The link is valid for 1 hour. If you did not request a reset, you can
ignore this message.
`
