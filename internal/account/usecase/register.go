package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/learnnect/platform-api/internal/account/entity"
	"github.com/learnnect/platform-api/internal/pkg/goerror"
	"github.com/learnnect/platform-api/internal/pkg/validate"
	verificationuc "github.com/learnnect/platform-api/internal/verification/usecase"
)

type RegisterInput struct {
	FullName string `validate:"required,min=3,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type RegisterOutput struct {
	UserID  int64
	Message string
}

// Register creates an unverified account and emails a verification code.
// The account stays dormant until RegisterVerify succeeds.
func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}
	if msg := validate.PasswordError(in.Password); msg != "" {
		return nil, goerror.NewBusiness(msg, goerror.CodeInvalidInput)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if err == nil {
		switch user.Status {
		case entity.UserStatusActive:
			return nil, goerror.NewBusiness("Email already registered", goerror.CodeConflict)
		case entity.UserStatusUnverified:
			return nil, goerror.NewBusiness("Account not verified", goerror.CodeConflict)
		default:
			return nil, goerror.NewBusiness("Account deactivated", goerror.CodeConflict)
		}
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	hashedPassword, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	newUser := entity.NewUser{
		ID:        s.uid.Generate(),
		Email:     in.Email,
		FullName:  in.FullName,
		AvatarURL: "https://ui-avatars.com/api/?name=" + url.QueryEscape(in.FullName),
		Status:    entity.UserStatusUnverified,
	}

	if err := s.repoDB.CreateUser(ctx, newUser, string(hashedPassword)); err != nil {
		slog.ErrorContext(ctx, "failed to repo create user", "email", newUser.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	out, err := s.otp.SendEmailOTP(ctx, verificationuc.SendEmailOTPInput{
		Destination: newUser.Email,
		Purpose:     "signup",
	})
	if err != nil {
		return nil, err
	}

	return &RegisterOutput{UserID: newUser.ID, Message: out.Message}, nil
}
