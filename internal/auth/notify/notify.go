// Package notify delivers password-reset codes to users. Delivery failures
// are the caller's to handle; the reset flow treats them as non-fatal so an
// outage in the mail provider cannot be used to probe for accounts.
package notify

import (
	"context"

	"github.com/akashhsiv/api-drf/pkg/slogx"
)

// Sender delivers a one-time password-reset code to a recipient.
type Sender interface {
	SendResetCode(ctx context.Context, recipientEmail, otpCode string) error
}

// LogSender writes the code to the service log instead of sending mail.
// Used in development and tests where no SMTP relay is available.
type LogSender struct{}

func (LogSender) SendResetCode(ctx context.Context, recipientEmail, otpCode string) error {
	slogx.FromContext(ctx).Info("password reset code issued",
		"email", recipientEmail,
		"otp", otpCode,
	)
	return nil
}
