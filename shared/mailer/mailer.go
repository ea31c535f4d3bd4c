package mailer

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// ErrNoRecipients is returned when a message has nobody to deliver to.
var ErrNoRecipients = errors.New("no recipients specified")

// Mailer represents an email sender. A Mailer without SMTP_HOST is disabled: messages
// are logged and dropped so local development works without a mail server.
type Mailer struct {
	config *Config
	dialer *gomail.Dialer
	logger *zerolog.Logger
}

// Email represents an email message.
type Email struct {
	To       []string
	Cc       []string
	Subject  string
	Body     string
	HTMLBody string
}

// Config holds SMTP configuration for sending emails.
type Config struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT"     envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"     envDefault:"no-reply@animal-shelter.local"`
}

// NewMailer creates a Mailer from the SMTP_* environment variables.
func NewMailer(logger *zerolog.Logger) *Mailer {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse mailer environment variables")
	}

	m, err := NewMailerWithConfig(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to validate mailer configuration")
	}

	return m
}

// NewMailerWithConfig creates a Mailer from an explicit configuration.
func NewMailerWithConfig(cfg Config, logger *zerolog.Logger) (*Mailer, error) {
	m := &Mailer{config: &cfg, logger: logger}

	if cfg.Host == "" {
		logger.Warn().Msg("SMTP_HOST is not set, outgoing email is disabled")
		return m, nil
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	return m, nil
}

// Enabled reports whether messages are actually delivered.
func (m *Mailer) Enabled() bool {
	return m.dialer != nil
}

// Send sends a single email.
func (m *Mailer) Send(email Email) error {
	if len(email.To) == 0 {
		return ErrNoRecipients
	}

	if !m.Enabled() {
		m.logger.Info().
			Strs("to", email.To).
			Str("subject", email.Subject).
			Msg("email delivery disabled, message dropped")
		return nil
	}

	msg := gomail.NewMessage()
	m.setEmailMessage(msg, email)

	return m.dialer.DialAndSend(msg)
}

// SendHTML sends an HTML email.
func (m *Mailer) SendHTML(to []string, subject, htmlBody string) error {
	return m.Send(Email{
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
	})
}

func (m *Mailer) setEmailMessage(msg *gomail.Message, email Email) {
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", email.To...)

	if len(email.Cc) > 0 {
		msg.SetHeader("Cc", email.Cc...)
	}

	msg.SetHeader("Subject", email.Subject)

	if email.HTMLBody != "" {
		msg.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			msg.AddAlternative("text/plain", email.Body)
		}
	} else {
		msg.SetBody("text/plain", email.Body)
	}
}

func (c *Config) validate() error {
	if c.Port == 0 {
		return fmt.Errorf("missing SMTP_PORT environment variable")
	}
	if c.Username == "" {
		return fmt.Errorf("missing SMTP_USERNAME environment variable")
	}
	if c.Password == "" {
		return fmt.Errorf("missing SMTP_PASSWORD environment variable")
	}
	if c.From == "" {
		return fmt.Errorf("missing SMTP_FROM environment variable")
	}

	return nil
}
