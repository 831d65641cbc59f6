package usecase

import (
	"context"
	"log/slog"

	"github.com/learnnect/platform-api/internal/account/entity"
	"github.com/learnnect/platform-api/internal/account/outbound/googleauth"
	"github.com/learnnect/platform-api/internal/pkg/clock"
	"github.com/learnnect/platform-api/internal/pkg/config"
	"github.com/learnnect/platform-api/internal/pkg/goerror"
	"github.com/learnnect/platform-api/internal/pkg/hash"
	"github.com/learnnect/platform-api/internal/pkg/instrument"
	"github.com/learnnect/platform-api/internal/pkg/jwt"
	"github.com/learnnect/platform-api/internal/pkg/uid"
	"github.com/learnnect/platform-api/internal/pkg/validator"
	verificationuc "github.com/learnnect/platform-api/internal/verification/usecase"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	CreateUser(ctx context.Context, user entity.NewUser, hashedPassword string) error
	UpsertGoogleUser(ctx context.Context, user entity.GoogleUser) (int64, bool, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	GetUserLoginInfo(ctx context.Context, email string) (*entity.UserLoginInfo, error)
	ActivateUser(ctx context.Context, userID int64) error
	UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error
}

type googleAuth interface {
	ExchangeCode(ctx context.Context, code string) (*googleauth.Profile, error)
	VerifyIDToken(ctx context.Context, idToken string) (*googleauth.Profile, error)
}

type otpService interface {
	SendEmailOTP(ctx context.Context, in verificationuc.SendEmailOTPInput) (*verificationuc.SendOutput, error)
	VerifyOTP(ctx context.Context, in verificationuc.VerifyOTPInput) (*verificationuc.VerifyOutput, error)
}

// Usecase owns user accounts: registration with email verification,
// password and Google sign-in, and password recovery.
type Usecase struct {
	repoDB    repoDB
	otp       otpService
	google    googleAuth
	bcrypt    hash.Hash
	jwt       jwt.JWT
	uid       uid.NumberID
	clock     clock.Clocker
	cfg       config.Config
	validator validator.Validator
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB     repoDB
	OTP        otpService
	Google     googleAuth
	Bcrypt     hash.Hash
	JWT        jwt.JWT
	UID        uid.NumberID
	Clock      clock.Clocker
	Config     config.Config
	Validator  validator.Validator
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		otp:       dep.OTP,
		google:    dep.Google,
		bcrypt:    dep.Bcrypt,
		jwt:       dep.JWT,
		uid:       dep.UID,
		clock:     dep.Clock,
		cfg:       dep.Config,
		validator: dep.Validator,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("account.usecase").Start(ctx, name)
}

func (s *Usecase) ensureUserStatusAllowed(ctx context.Context, userID int64, status entity.UserStatus) error {
	switch status.Ensure() {
	case entity.UserStatusUnknown:
		slog.WarnContext(ctx, "user account status is unrecognized", "user_id", userID)
		return goerror.NewBusiness("account status is unrecognized", goerror.CodeForbidden)

	case entity.UserStatusUnverified:
		slog.WarnContext(ctx, "user account is unverified", "user_id", userID)
		return goerror.NewBusiness("email not verified", goerror.CodeForbidden)

	case entity.UserStatusInactive:
		slog.WarnContext(ctx, "user account is deactivated", "user_id", userID)
		return goerror.NewBusiness("account is deactivated", goerror.CodeForbidden)

	default:
		return nil
	}
}
