package utils

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

// Mailer sends applicant-facing mail over SMTP. With no SMTP host configured
// it logs and does nothing, so local and test runs never try to dial out.
type Mailer struct {
	Host   string
	User   string
	Pass   string
	Sender string
}

func NewMailer(cfg Config) *Mailer {
	return &Mailer{
		Host:   cfg.SMTPHost,
		User:   cfg.SMTPUser,
		Pass:   cfg.SMTPPass,
		Sender: cfg.SMTPSender,
	}
}

// SendPaymentConfirmation mails the applicant after their payment is
// confirmed. Failures are logged, never surfaced: the payment is already
// recorded and mail must not affect the response to the provider.
func (m *Mailer) SendPaymentConfirmation(fullName, email, tier string) {
	if m.Host == "" {
		log.Printf("mailer not configured, skipping confirmation email to %s", email)
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.Sender)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Kinkly Berlin — Your payment has been received")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Dear %s,\n\nYour payment for %s has been received. Your application is now under review.\n\nKinkly Berlin",
		fullName, tier,
	))

	d := gomail.NewDialer(m.Host, 465, m.User, m.Pass)
	if err := d.DialAndSend(msg); err != nil {
		log.Printf("Failed to send confirmation email to %s: %v", email, err)
		return
	}

	log.Printf("Confirmation email sent to %s", email)
}
