package usecase

import (
	"context"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/learnnect/platform-api/internal/pkg/clock"
	"github.com/learnnect/platform-api/internal/pkg/goerror"
	"github.com/learnnect/platform-api/internal/pkg/goroutine"
	"github.com/learnnect/platform-api/internal/pkg/instrument"
	"github.com/learnnect/platform-api/internal/pkg/jwt"
	"github.com/learnnect/platform-api/internal/pkg/uid"
	"github.com/learnnect/platform-api/internal/pkg/validator"
	"github.com/learnnect/platform-api/internal/review/entity"
	"go.opentelemetry.io/otel/trace"
)

type ReviewSubmittedEvent struct {
	ReviewID int64
	CourseID string
	Email    string
	Name     string
	Rating   int
}

type repoDB interface {
	CreateReview(ctx context.Context, rev entity.Review) error
	GetReview(ctx context.Context, id int64) (*entity.Review, error)
	ListApproved(ctx context.Context, courseID string, limit, offset int32) ([]entity.Review, error)
	Moderate(ctx context.Context, id int64, status entity.Status, moderatorID int64, at time.Time) error
}

type repoMessaging interface {
	PublishReviewSubmitted(ctx context.Context, msg ReviewSubmittedEvent) error
}

// Usecase owns course reviews: public submission and listing, and the
// moderation decisions that gate what the listing shows.
type Usecase struct {
	repoDB    repoDB
	repoMsg   repoMessaging
	uid       uid.NumberID
	clock     clock.Clocker
	validator validator.Validator
	enforcer  *casbin.Enforcer
	goroutine *goroutine.Manager
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB     repoDB
	RepoMsg    repoMessaging
	UID        uid.NumberID
	Clock      clock.Clocker
	Validator  validator.Validator
	Enforcer   *casbin.Enforcer
	Goroutine  *goroutine.Manager
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		repoMsg:   dep.RepoMsg,
		uid:       dep.UID,
		clock:     dep.Clock,
		validator: dep.Validator,
		enforcer:  dep.Enforcer,
		goroutine: dep.Goroutine,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("review.usecase").Start(ctx, name)
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
