// Package notify delivers one-time login codes out-of-band.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/employee-records-api/internal/infrastructure/smtp"
	snsinfra "github.com/employee-records-api/internal/infrastructure/sns"
)

// Notifier delivers a code to the channel the identity names. Delivery
// errors are reported as such; the caller decides whether they matter.
type Notifier interface {
	Deliver(ctx context.Context, identity, code string) error
}

type notifier struct {
	mailer    smtp.Mailer
	smsSender snsinfra.SMSSender
}

// New builds a Notifier that emails codes, or texts them when the identity
// is an E.164 phone number. smsSender may be nil; phone identities then
// fail with a delivery error instead of panicking.
func New(mailer smtp.Mailer, smsSender snsinfra.SMSSender) Notifier {
	return &notifier{mailer: mailer, smsSender: smsSender}
}

func (n *notifier) Deliver(ctx context.Context, identity, code string) error {
	if isPhoneNumber(identity) {
		if n.smsSender == nil {
			return fmt.Errorf("sms delivery not configured")
		}
		return n.smsSender.SendSMS(ctx, identity, "Your login PIN: "+code)
	}
	body := fmt.Sprintf(
		"Your PIN code to access the Employee Management System is: %s\r\n\r\n"+
			"This PIN expires in 10 minutes. You have 3 attempts to enter it.\r\n"+
			"If you didn't request this PIN, please ignore this message.",
		code,
	)
	return n.mailer.SendEmail(identity, "Your Employee Management System Login PIN", body)
}

// isPhoneNumber treats a leading '+' followed by digits as E.164. Identities
// stay opaque strings everywhere else; this is purely channel routing.
func isPhoneNumber(identity string) bool {
	if !strings.HasPrefix(identity, "+") || len(identity) < 8 {
		return false
	}
	for _, r := range identity[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
