// Package mailer delivers verification links over SMTP.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type Mailer interface {
	SendVerification(address, link string) error
}

type SMTPMailer struct {
	Host     string
	Port     int
	From     string
	Password string
}

func (m *SMTPMailer) SendVerification(address, link string) error {
	d := gomail.NewDialer(m.Host, m.Port, m.From, m.Password)
	return d.DialAndSend(m.message(address, link))
}

func (m *SMTPMailer) message(address, link string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", address)
	msg.SetHeader("Subject", "Verify your email")
	msg.SetBody("text/html", fmt.Sprintf(
		"<h1>Please click on <a href=%q>this link</a> to verify your account.</h1>", link))
	return msg
}
