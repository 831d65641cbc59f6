package usecase

import (
	"context"
	"log/slog"

	"github.com/learnnect/platform-api/internal/pkg/goerror"
	"github.com/learnnect/platform-api/internal/verification/entity"
)

type SendEmailOTPInput struct {
	Destination string `validate:"required,email"`
	Purpose     entity.Purpose
}

type SendOutput struct {
	Sent    bool
	Message string
}

// SendEmailOTP issues a fresh code for the email address, replacing any
// prior code for the same destination, and delivers it by email. Delivery
// failures are reported as Sent=false with a generic message; the cause is
// logged only.
func (s *Usecase) SendEmailOTP(ctx context.Context, in SendEmailOTPInput) (*SendOutput, error) {
	ctx, span := s.startSpan(ctx, "SendEmailOTP")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	code, err := generateCode()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate code", "error", err)
		return nil, goerror.NewServer(err)
	}

	rec, err := s.newRecord(entity.ChannelEmail, in.Destination, code, in.Purpose)
	if err != nil {
		slog.ErrorContext(ctx, "failed to build record", "error", err)
		return nil, goerror.NewServer(err)
	}

	key := entity.RecordKey(entity.ChannelEmail, in.Destination)
	if err := s.store.Put(ctx, key, rec, s.storeTTL()); err != nil {
		slog.ErrorContext(ctx, "failed to store record", "key", key, "error", err)
		return &SendOutput{Sent: false, Message: MsgSendFailed}, nil
	}

	if err := s.email.SendCode(ctx, in.Destination, rec.Purpose, code, s.expiry()); err != nil {
		slog.ErrorContext(ctx, "failed to deliver email code", "destination", in.Destination, "error", err)
		return &SendOutput{Sent: false, Message: MsgSendFailed}, nil
	}

	return &SendOutput{Sent: true, Message: msgEmailSent(in.Destination)}, nil
}
