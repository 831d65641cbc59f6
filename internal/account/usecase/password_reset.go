package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/learnnect/platform-api/internal/pkg/goerror"
	"github.com/learnnect/platform-api/internal/pkg/validate"
	verificationuc "github.com/learnnect/platform-api/internal/verification/usecase"
)

type PasswordResetInput struct {
	Email       string `validate:"required,email"`
	Code        string `validate:"required,len=6,numeric"`
	NewPassword string `validate:"required"`
}

type PasswordResetOutput struct {
	Reset             bool
	Message           string
	RemainingAttempts *int
}

// PasswordReset replaces the password once the emailed reset code checks
// out. A wrong code reports the remaining attempt budget without
// touching the stored hash.
func (s *Usecase) PasswordReset(ctx context.Context, in PasswordResetInput) (*PasswordResetOutput, error) {
	ctx, span := s.startSpan(ctx, "PasswordReset")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}
	if msg := validate.PasswordError(in.NewPassword); msg != "" {
		return nil, goerror.NewBusiness(msg, goerror.CodeInvalidInput)
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
		return &PasswordResetOutput{
			Reset:             false,
			Message:           vr.Message,
			RemainingAttempts: vr.RemainingAttempts,
		}, nil
	}

	hashedPassword, err := s.bcrypt.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoDB.UpdatePassword(ctx, user.ID, string(hashedPassword)); err != nil {
		slog.ErrorContext(ctx, "failed to update password", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &PasswordResetOutput{Reset: true, Message: "Password has been reset. You can now log in."}, nil
}
