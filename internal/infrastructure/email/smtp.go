package email

import (
	"juntos_server/internal/config"

	"gopkg.in/gomail.v2"
)

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSmtpMailer builds a mailer from smtpConfig. Use NewMailer to fall
// back to the log-only implementation when no host is configured.
func NewSmtpMailer(conf config.SmtpConfig) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(conf.Host, conf.Port, conf.User, conf.Password),
		from:   conf.From,
	}
}

// NewMailer selects the implementation from the configuration.
func NewMailer(conf config.SmtpConfig) Mailer {
	if conf.Host == "" {
		return NewLogMailer()
	}
	return NewSmtpMailer(conf)
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	return m.dialer.DialAndSend(msg)
}
