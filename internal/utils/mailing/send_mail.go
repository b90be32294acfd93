package mailing

import (
	"Meal-Planner-Backend/internal/utils"
	"errors"
	"strconv"

	"gopkg.in/gomail.v2"
)

var ErrMailNotConfigured = errors.New("smtp is not configured")

type (
	Mailer interface {
		SendMail(toEmail string, subject string, body string) error
		Enabled() bool
	}

	MailConfig struct {
		AppURL       string
		SMTPHost     string
		SMTPPort     string
		SMTPSender   string
		SMTPEmail    string
		SMTPPassword string
	}

	dialer interface {
		DialAndSend(m ...*gomail.Message) error
	}

	smtpMailer struct {
		config MailConfig
		dialer dialer
	}
)

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

func NewMailer(config MailConfig) Mailer {
	m := &smtpMailer{config: config}
	port, err := strconv.Atoi(config.SMTPPort)
	if config.SMTPHost != "" && err == nil {
		m.dialer = gomail.NewDialer(config.SMTPHost, port, config.SMTPEmail, config.SMTPPassword)
	}
	return m
}

func (m *smtpMailer) Enabled() bool {
	return m.dialer != nil
}

func (m *smtpMailer) SendMail(toEmail string, subject string, body string) error {
	if !m.Enabled() {
		return ErrMailNotConfigured
	}
	return m.dialer.DialAndSend(m.buildMessage(toEmail, subject, body))
}

func (m *smtpMailer) buildMessage(toEmail string, subject string, body string) *gomail.Message {
	mailer := gomail.NewMessage()
	if m.config.SMTPSender != "" {
		mailer.SetAddressHeader("From", m.config.SMTPEmail, m.config.SMTPSender)
	} else {
		mailer.SetHeader("From", m.config.SMTPEmail)
	}
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	return mailer
}
