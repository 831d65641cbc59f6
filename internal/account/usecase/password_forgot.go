package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/learnnect/platform-api/internal/pkg/goerror"
	verificationuc "github.com/learnnect/platform-api/internal/verification/usecase"
)

type PasswordForgotInput struct {
	Email string `validate:"required,email"`
}

type PasswordForgotOutput struct {
	Message string
}

const msgResetRequested = "If the email is registered, a reset code has been sent."

// PasswordForgot emails a reset code. Unknown or ineligible addresses get
// the same answer as registered ones, so the endpoint does not reveal
// which emails have accounts.
func (s *Usecase) PasswordForgot(ctx context.Context, in PasswordForgotInput) (*PasswordForgotOutput, error) {
	ctx, span := s.startSpan(ctx, "PasswordForgot")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "password reset requested for unavailable user", "email", in.Email)
		return &PasswordForgotOutput{Message: msgResetRequested}, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.ensureUserStatusAllowed(ctx, user.ID, user.Status); err != nil {
		slog.WarnContext(ctx, "password reset requested for ineligible user", "user_id", user.ID, "status", user.Status.String())
		return &PasswordForgotOutput{Message: msgResetRequested}, nil
	}

	if _, err := s.otp.SendEmailOTP(ctx, verificationuc.SendEmailOTPInput{
		Destination: in.Email,
		Purpose:     "password_reset",
	}); err != nil {
		return nil, err
	}

	return &PasswordForgotOutput{Message: msgResetRequested}, nil
}
