package usecase

import (
	"context"
	"log/slog"

	"github.com/learnnect/platform-api/internal/pkg/goerror"
	"github.com/learnnect/platform-api/internal/pkg/validate"
	"github.com/learnnect/platform-api/internal/verification/entity"
)

type SendSMSOTPInput struct {
	Destination string `validate:"required"`
	Purpose     entity.Purpose
}

// SendSMSOTP issues a fresh code for the mobile number and delivers it via
// the SMS gateway. The number must be a 10-digit Indian mobile; anything
// else is rejected with the format message before any record is written or
// any provider call is made.
func (s *Usecase) SendSMSOTP(ctx context.Context, in SendSMSOTPInput) (*SendOutput, error) {
	ctx, span := s.startSpan(ctx, "SendSMSOTP")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if !validate.IndianMobile(in.Destination) {
		return &SendOutput{Sent: false, Message: MsgInvalidPhone}, nil
	}

	code, err := generateCode()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate code", "error", err)
		return nil, goerror.NewServer(err)
	}

	rec, err := s.newRecord(entity.ChannelSMS, in.Destination, code, in.Purpose)
	if err != nil {
		slog.ErrorContext(ctx, "failed to build record", "error", err)
		return nil, goerror.NewServer(err)
	}

	key := entity.RecordKey(entity.ChannelSMS, in.Destination)
	if err := s.store.Put(ctx, key, rec, s.storeTTL()); err != nil {
		slog.ErrorContext(ctx, "failed to store record", "key", key, "error", err)
		return &SendOutput{Sent: false, Message: MsgSendFailed}, nil
	}

	if err := s.sms.SendCode(ctx, in.Destination, code, s.expiry()); err != nil {
		slog.ErrorContext(ctx, "failed to deliver sms code", "destination", in.Destination, "error", err)
		return &SendOutput{Sent: false, Message: MsgSendFailed}, nil
	}

	return &SendOutput{Sent: true, Message: msgSMSSent(in.Destination)}, nil
}
