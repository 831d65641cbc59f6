// Package engagement owns the lead-capture forms on the public site.
// A submission may be gated behind email verification; the payload is
// parked until the submitter proves ownership of the address.
package engagement

import (
	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/learnnect/platform-api/internal/engagement/inbound"
	"github.com/learnnect/platform-api/internal/engagement/outbound/db"
	"github.com/learnnect/platform-api/internal/engagement/outbound/mq"
	"github.com/learnnect/platform-api/internal/engagement/outbound/stash"
	"github.com/learnnect/platform-api/internal/engagement/usecase"
	"github.com/learnnect/platform-api/internal/pkg/clock"
	"github.com/learnnect/platform-api/internal/pkg/config"
	"github.com/learnnect/platform-api/internal/pkg/goroutine"
	"github.com/learnnect/platform-api/internal/pkg/idempotency"
	"github.com/learnnect/platform-api/internal/pkg/instrument"
	"github.com/learnnect/platform-api/internal/pkg/messaging"
	"github.com/learnnect/platform-api/internal/pkg/router"
	"github.com/learnnect/platform-api/internal/pkg/storage"
	"github.com/learnnect/platform-api/internal/pkg/uid"
	"github.com/learnnect/platform-api/internal/pkg/validator"
	verificationuc "github.com/learnnect/platform-api/internal/verification/usecase"
	"github.com/redis/go-redis/v9"
)

type Dependency struct {
	DBConn      *pgxpool.Pool              `validate:"required"`
	CacheConn   *redis.Client              `validate:"required"`
	Messaging   messaging.Messaging        `validate:"required"`
	Storage     storage.Storage            `validate:"required"`
	OTP         *verificationuc.Usecase    `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Enforcer    *casbin.Enforcer           `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	Keys        uid.StringID               `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:      db.NewDB(dep.DBConn, dep.Instrument),
		Stash:       stash.NewRedis(dep.CacheConn, dep.Instrument),
		RepoMsg:     mq.NewMessaging(dep.Messaging, dep.Instrument),
		OTP:         dep.OTP,
		Storage:     dep.Storage,
		Idempotency: dep.Idempotency,
		UID:         dep.UID,
		Keys:        dep.Keys,
		Clock:       dep.Clock,
		Config:      dep.Config,
		Validator:   dep.Validator,
		Enforcer:    dep.Enforcer,
		Goroutine:   dep.Goroutine,
		Instrument:  dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
