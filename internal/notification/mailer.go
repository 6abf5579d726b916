package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"foodorder/internal/config"
)

type Mail struct {
	To      string
	Subject string
	HTML    string
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type SMTPMailer struct {
	cfg      config.MailConfig
	sendMail sendMailFunc
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, sendMail: smtp.SendMail}
}

func (m *SMTPMailer) Send(ctx context.Context, mail Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := m.sendMail(addr, auth, m.cfg.From, []string{mail.To}, m.build(mail)); err != nil {
		return fmt.Errorf("sending mail to %s: %w", mail.To, err)
	}
	return nil
}

func (m *SMTPMailer) build(mail Mail) []byte {
	var b strings.Builder
	b.WriteString("From: " + m.cfg.From + "\r\n")
	b.WriteString("To: " + mail.To + "\r\n")
	b.WriteString("Subject: " + mail.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(mail.HTML)
	return []byte(b.String())
}
