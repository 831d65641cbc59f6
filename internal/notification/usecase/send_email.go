package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/learnnect/platform-api/internal/pkg/mail"
	"github.com/sethvargo/go-retry"
)

type confirmationEmailInput struct {
	Email        string
	Template     emailTemplate
	TemplateData map[string]any
}

// sendConfirmationEmail renders and delivers one best-effort email. Delivery
// is retried a couple of times with fibonacci backoff; a message that still
// fails is logged and dropped because the triggering operation has already
// been acknowledged to the user.
func (s *Usecase) sendConfirmationEmail(ctx context.Context, in confirmationEmailInput) {
	htmlBody, err := s.renderHTML("html", in.Template.html, in.TemplateData)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render email html body", "email", in.Email, "error", err)
		return
	}

	textBody, err := s.renderText("text", in.Template.text, in.TemplateData)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render email text body", "email", in.Email, "error", err)
		return
	}

	msg := mail.Message{
		To:       []string{in.Email},
		Subject:  in.Template.subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}

	b := retry.NewFibonacci(500 * time.Millisecond)
	b = retry.WithMaxRetries(2, b) // three attempts in total

	sendErr := retry.Do(ctx, b, func(ctx context.Context) error {
		if err := s.repoMail.Send(ctx, msg); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if sendErr != nil {
		slog.ErrorContext(ctx, "failed to send confirmation email, dropping", "email", in.Email, "subject", in.Template.subject, "error", sendErr)
		return
	}

	slog.InfoContext(ctx, "confirmation email sent", "email", in.Email, "subject", in.Template.subject)
}
