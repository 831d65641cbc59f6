package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/learnnect/platform-api/internal/account/entity"
	"github.com/learnnect/platform-api/internal/pkg/goerror"
	verificationuc "github.com/learnnect/platform-api/internal/verification/usecase"
)

type RegisterVerifyInput struct {
	Email string `validate:"required,email"`
	Code  string `validate:"required,len=6,numeric"`
}

type RegisterVerifyOutput struct {
	Verified          bool
	Message           string
	RemainingAttempts *int
}

// RegisterVerify checks the emailed code and activates the account.
// Verifying an already-active account succeeds without changing it.
func (s *Usecase) RegisterVerify(ctx context.Context, in RegisterVerifyInput) (*RegisterVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "RegisterVerify")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	vr, err := s.otp.VerifyOTP(ctx, verificationuc.VerifyOTPInput{
		Destination: in.Email,
		Code:        in.Code,
		Channel:     "email",
	})
	if err != nil {
		return nil, err
	}
	if !vr.Verified {
		return &RegisterVerifyOutput{
			Verified:          false,
			Message:           vr.Message,
			RemainingAttempts: vr.RemainingAttempts,
		}, nil
	}

	if user.Status == entity.UserStatusActive {
		return &RegisterVerifyOutput{Verified: true, Message: vr.Message}, nil
	}

	if err := s.repoDB.ActivateUser(ctx, user.ID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			// Lost the race with another verify; the account ended up
			// active either way.
			return &RegisterVerifyOutput{Verified: true, Message: vr.Message}, nil
		}

		slog.ErrorContext(ctx, "failed to activate user", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &RegisterVerifyOutput{Verified: true, Message: vr.Message}, nil
}
