// Package email sends transactional notifications: signup welcome and
// verification decisions.
package email

import "go.uber.org/zap"

// Mailer delivers one message. Implementations must be safe for
// concurrent use.
type Mailer interface {
	Send(to, subject, body string) error
}

// logMailer is the fallback when no SMTP host is configured. Messages
// are logged instead of delivered, keeping development setups mail-free.
type logMailer struct{}

// NewLogMailer returns the log-only mailer.
func NewLogMailer() Mailer {
	return &logMailer{}
}

func (m *logMailer) Send(to, subject, body string) error {
	zap.L().Info("mail delivery skipped, no smtp host configured",
		zap.String("to", to), zap.String("subject", subject))
	return nil
}
