package usecase

import (
	"context"
	"log/slog"

	"github.com/learnnect/platform-api/internal/pkg/goerror"
	"github.com/learnnect/platform-api/internal/verification/entity"
)

type ResendOTPInput struct {
	Destination string `validate:"required"`
	Channel     entity.Channel
	Purpose     entity.Purpose
}

// ResendOTP invalidates any live code for the destination and issues a new
// one. The old code is deleted first so it can never verify again, even if
// the new send fails. Cooldown between resends is enforced by the client
// flow, not here.
func (s *Usecase) ResendOTP(ctx context.Context, in ResendOTPInput) (*SendOutput, error) {
	ctx, span := s.startSpan(ctx, "ResendOTP")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	ch := in.Channel.Ensure()
	if ch == entity.ChannelUnknown {
		return nil, goerror.NewInvalidFormat("channel must be email or sms")
	}

	key := entity.RecordKey(ch, in.Destination)
	if err := s.store.Delete(ctx, key); err != nil {
		slog.ErrorContext(ctx, "failed to invalidate prior record", "key", key, "error", err)
		return &SendOutput{Sent: false, Message: MsgResendFailed}, nil
	}

	var (
		out *SendOutput
		err error
	)

	switch ch {
	case entity.ChannelEmail:
		out, err = s.SendEmailOTP(ctx, SendEmailOTPInput{Destination: in.Destination, Purpose: in.Purpose})
	case entity.ChannelSMS:
		out, err = s.SendSMSOTP(ctx, SendSMSOTPInput{Destination: in.Destination, Purpose: in.Purpose})
	}
	if err != nil {
		return nil, err
	}

	if !out.Sent && out.Message == MsgSendFailed {
		return &SendOutput{Sent: false, Message: MsgResendFailed}, nil
	}

	return out, nil
}
