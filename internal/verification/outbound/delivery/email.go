// Package delivery sends one-time codes to their destinations through the
// configured email and SMS providers.
package delivery

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/learnnect/platform-api/internal/pkg/instrument"
	"github.com/learnnect/platform-api/internal/pkg/mail"
	"github.com/learnnect/platform-api/internal/verification/entity"
	"go.opentelemetry.io/otel/codes"
)

var emailBodyTmpl = template.Must(template.New("otp_email").Parse(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background-color:#f4f4f7;font-family:Arial,Helvetica,sans-serif;">
  <div style="max-width:560px;margin:0 auto;padding:32px 24px;">
    <h2 style="color:#1a1a2e;">{{.Title}}</h2>
    <p style="color:#51545e;">Use the code below to complete your {{.Title}} on Learnnect.</p>
    <div style="background-color:#ffffff;border:1px solid #e0e0e6;border-radius:8px;padding:24px;text-align:center;margin:24px 0;">
      <span style="font-family:'Courier New',monospace;font-size:36px;font-weight:bold;letter-spacing:8px;color:#1a1a2e;">{{.Code}}</span>
    </div>
    <p style="color:#51545e;">This code expires in {{.ExpiryMinutes}} minutes.</p>
    <p style="color:#9a9ea6;font-size:13px;">If you did not request this code, you can safely ignore this email. Never share this code with anyone; Learnnect staff will never ask for it.</p>
    <p style="color:#9a9ea6;font-size:13px;">&mdash; The Learnnect Team<br>support@learnnect.com</p>
  </div>
</body>
</html>`))

// Email renders and sends the one-time-code email.
type Email struct {
	mailer mail.Mail
	from   string
	ins    instrument.Instrumentation
}

func NewEmail(mailer mail.Mail, from string, ins instrument.Instrumentation) *Email {
	return &Email{mailer: mailer, from: from, ins: ins}
}

// SendCode delivers the code with the purpose-specific wording.
func (e *Email) SendCode(ctx context.Context, email string, purpose entity.Purpose, code string, expiry time.Duration) error {
	ctx, span := e.ins.Tracer("verification.outbound.delivery").Start(ctx, "SendEmailCode")
	defer span.End()

	minutes := int(expiry.Minutes())

	var htmlBody strings.Builder
	err := emailBodyTmpl.Execute(&htmlBody, map[string]any{
		"Title":         purpose.Title(),
		"Code":          code,
		"ExpiryMinutes": minutes,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	msg := mail.Message{
		From:     e.from,
		To:       []string{email},
		Subject:  fmt.Sprintf("Your Learnnect OTP: %s", code),
		TextBody: fmt.Sprintf("Your OTP for %s is: %s. Valid for %d minutes.", purpose.String(), code, minutes),
		HTMLBody: htmlBody.String(),
	}

	if err := e.mailer.Send(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
