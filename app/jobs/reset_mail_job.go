// Package jobs defines the background jobs processed by the queue workers.
package jobs

import (
	"fmt"

	"github.com/Duvhier/jylclean-back/config"
	"github.com/Duvhier/jylclean-back/pkg/mail"
	"github.com/Duvhier/jylclean-back/pkg/queue"
)

// ResetMailJob delivers the password-reset link by email.
// The token travels only in the mail body; the database holds its digest.
type ResetMailJob struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// Handle sends the reset email via SMTP.
func (j *ResetMailJob) Handle() error {
	link := fmt.Sprintf("%s/reset-password/%s", config.FrontendURL(), j.Token)

	body := fmt.Sprintf(`
		<p>You requested a password reset.</p>
		<p><a href="%s">Click here to choose a new password.</a></p>
		<p>The link expires in one hour. If you did not request this, ignore this message.</p>`, link)

	return mail.To(j.Email).
		Subject("Password reset").
		Body(body).
		Send()
}

// RegisterAll makes every job type known to the queue so workers can
// deserialize payloads. Call once at boot.
func RegisterAll() {
	queue.Register("*jobs.ResetMailJob", func() queue.Job { return &ResetMailJob{} })
}

// QueueNotifier dispatches notification jobs onto the queue instead of
// blocking the request on SMTP.
type QueueNotifier struct{}

// NotifyPasswordReset enqueues the reset mail for background delivery.
func (QueueNotifier) NotifyPasswordReset(email, token string) error {
	return queue.Dispatch(&ResetMailJob{Email: email, Token: token})
}
