package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/LICASKJS/backend-engeman/config"
	"github.com/LICASKJS/backend-engeman/pkg/logger"
)

// Mailer envia os e-mails transacionais do portal via SMTP
type Mailer interface {
	Send(to []string, subject, htmlBody string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	sender string
}

func New(cfg *config.MailConfig) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		sender: cfg.Sender,
	}
}

func (m *smtpMailer) Send(to []string, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		logger.Error("Falha ao enviar e-mail", err, map[string]interface{}{
			"to":      to,
			"subject": subject,
		})
		return fmt.Errorf("falha ao enviar e-mail: %w", err)
	}

	logger.Debug("E-mail enviado", map[string]interface{}{
		"to":      to,
		"subject": subject,
	})
	return nil
}
