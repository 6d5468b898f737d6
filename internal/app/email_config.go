package app

import (
	"time"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/mail"
)

// SMTPSettings converts the configuration block into mailer settings.
func (c EmailConfig) SMTPSettings() mail.SMTPSettings {
	timeout := c.SMTP.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	from := c.SMTP.From
	if from == "" {
		from = c.From
	}

	return mail.SMTPSettings{
		Enabled:  c.SMTP.Enabled,
		Host:     c.SMTP.Host,
		Port:     c.SMTP.Port,
		Username: c.SMTP.Username,
		Password: c.SMTP.Password,
		From:     from,
		UseTLS:   c.SMTP.UseTLS,
		Timeout:  timeout,
	}
}
