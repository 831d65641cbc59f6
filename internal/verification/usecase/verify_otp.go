package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/learnnect/platform-api/internal/pkg/goerror"
	"github.com/learnnect/platform-api/internal/verification/entity"
)

type VerifyOTPInput struct {
	Destination string `validate:"required"`
	Code        string `validate:"required,len=6,numeric"`
	Channel     entity.Channel
}

type VerifyOutput struct {
	Verified          bool
	Message           string
	RemainingAttempts *int
}

// VerifyOTP checks a submitted code against the live record for the
// destination. The record is deleted on success (codes are single use), on
// expiry, and when the attempt budget runs out; a wrong code otherwise
// burns one attempt and reports how many remain.
func (s *Usecase) VerifyOTP(ctx context.Context, in VerifyOTPInput) (*VerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyOTP")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	ch := in.Channel.Ensure()
	if ch == entity.ChannelUnknown {
		return nil, goerror.NewInvalidFormat("channel must be email or sms")
	}

	key := entity.RecordKey(ch, in.Destination)

	rec, err := s.store.Get(ctx, key)
	if errors.Is(err, goerror.ErrNotFound) {
		return &VerifyOutput{Verified: false, Message: MsgNotFound}, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to load record", "key", key, "error", err)
		return &VerifyOutput{Verified: false, Message: MsgVerifyFailed}, nil
	}

	if rec.Expired(s.clock.Now()) {
		s.deleteRecord(ctx, key)
		return &VerifyOutput{Verified: false, Message: MsgExpired}, nil
	}

	if rec.Exhausted() {
		s.deleteRecord(ctx, key)
		return &VerifyOutput{Verified: false, Message: MsgExhausted}, nil
	}

	if s.hmac.Verify(rec.CodeHash, in.Code) {
		s.deleteRecord(ctx, key)
		return &VerifyOutput{Verified: true, Message: MsgVerified}, nil
	}

	rec.Attempts++
	remaining := rec.MaxAttempts - rec.Attempts

	if remaining <= 0 {
		s.deleteRecord(ctx, key)
		return &VerifyOutput{Verified: false, Message: MsgExhausted}, nil
	}

	if err := s.store.Update(ctx, key, *rec, s.storeTTL()); err != nil {
		slog.ErrorContext(ctx, "failed to persist attempt count", "key", key, "error", err)
		return &VerifyOutput{Verified: false, Message: MsgVerifyFailed}, nil
	}

	return &VerifyOutput{
		Verified:          false,
		Message:           msgIncorrect(remaining),
		RemainingAttempts: &remaining,
	}, nil
}

// deleteRecord is best effort; a record that survives deletion still dies
// by TTL, so failures are logged and otherwise ignored.
func (s *Usecase) deleteRecord(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		slog.WarnContext(ctx, "failed to delete record", "key", key, "error", err)
	}
}
