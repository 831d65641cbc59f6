package usecase

import (
	"context"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/learnnect/platform-api/internal/engagement/entity"
	"github.com/learnnect/platform-api/internal/pkg/clock"
	"github.com/learnnect/platform-api/internal/pkg/config"
	"github.com/learnnect/platform-api/internal/pkg/goerror"
	"github.com/learnnect/platform-api/internal/pkg/goroutine"
	"github.com/learnnect/platform-api/internal/pkg/idempotency"
	"github.com/learnnect/platform-api/internal/pkg/instrument"
	"github.com/learnnect/platform-api/internal/pkg/jwt"
	"github.com/learnnect/platform-api/internal/pkg/storage"
	"github.com/learnnect/platform-api/internal/pkg/uid"
	"github.com/learnnect/platform-api/internal/pkg/validator"
	verificationuc "github.com/learnnect/platform-api/internal/verification/usecase"
	"go.opentelemetry.io/otel/trace"
)

type FormSubmittedEvent struct {
	LeadID   int64
	FormType string
	Email    string
	Name     string
	Fields   map[string]string
}

type repoDB interface {
	CreateLead(ctx context.Context, lead entity.Lead) error
	ListLeads(ctx context.Context, filter entity.LeadListFilter) ([]entity.Lead, int64, error)
}

type repoStash interface {
	Put(ctx context.Context, form entity.PendingForm, ttl time.Duration) error
	Pop(ctx context.Context, formType entity.FormType, email string) (*entity.PendingForm, error)
	Delete(ctx context.Context, formType entity.FormType, email string) error
}

type repoMessaging interface {
	PublishFormSubmitted(ctx context.Context, msg FormSubmittedEvent) error
}

type otpService interface {
	SendEmailOTP(ctx context.Context, in verificationuc.SendEmailOTPInput) (*verificationuc.SendOutput, error)
	VerifyOTP(ctx context.Context, in verificationuc.VerifyOTPInput) (*verificationuc.VerifyOutput, error)
}

// Usecase gates public form submissions behind email verification when
// the engagement module is configured to require it, and owns the
// resulting leads.
type Usecase struct {
	repoDB    repoDB
	stash     repoStash
	repoMsg   repoMessaging
	otp       otpService
	storage   storage.Storage
	idemp     idempotency.Idempotency
	uid       uid.NumberID
	keys      uid.StringID
	clock     clock.Clocker
	cfg       config.Config
	validator validator.Validator
	enforcer  *casbin.Enforcer
	goroutine *goroutine.Manager
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB      repoDB
	Stash       repoStash
	RepoMsg     repoMessaging
	OTP         otpService
	Storage     storage.Storage
	Idempotency idempotency.Idempotency
	UID         uid.NumberID
	Keys        uid.StringID
	Clock       clock.Clocker
	Config      config.Config
	Validator   validator.Validator
	Enforcer    *casbin.Enforcer
	Goroutine   *goroutine.Manager
	Instrument  instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		stash:     dep.Stash,
		repoMsg:   dep.RepoMsg,
		otp:       dep.OTP,
		storage:   dep.Storage,
		idemp:     dep.Idempotency,
		uid:       dep.UID,
		keys:      dep.Keys,
		clock:     dep.Clock,
		cfg:       dep.Config,
		validator: dep.Validator,
		enforcer:  dep.Enforcer,
		goroutine: dep.Goroutine,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("engagement.usecase").Start(ctx, name)
}

func (s *Usecase) requireOTP() bool {
	return s.cfg.GetBool("modules.engagement.require_otp")
}

// emailField returns the field name carrying the submitter's address for
// a form type; the mapping comes from config with "email" as fallback.
func (s *Usecase) emailField(formType entity.FormType) string {
	fields := s.cfg.GetMap("modules.engagement.email_fields")
	if f, ok := fields[formType.String()]; ok && f != "" {
		return f
	}
	return "email"
}

func (s *Usecase) stashTTL() time.Duration {
	if d := s.cfg.GetMinute("modules.verification.otp_expiry_minutes"); d > 0 {
		return d
	}
	return 10 * time.Minute
}

func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, obj, act string) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	ok, err := s.enforcer.Enforce(clm.Subject, obj, act)
	if err != nil {
		return nil, goerror.NewServer(err)
	}
	if !ok {
		return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	return clm, nil
}
