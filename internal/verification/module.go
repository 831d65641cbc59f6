// Package verification implements the one-time-code workflow: issuing
// codes over email and SMS, persisting them with an attempt budget, and
// verifying user submissions.
package verification

import (
	"github.com/learnnect/platform-api/internal/pkg/clock"
	"github.com/learnnect/platform-api/internal/pkg/config"
	"github.com/learnnect/platform-api/internal/pkg/hash"
	"github.com/learnnect/platform-api/internal/pkg/instrument"
	"github.com/learnnect/platform-api/internal/pkg/mail"
	"github.com/learnnect/platform-api/internal/pkg/router"
	"github.com/learnnect/platform-api/internal/pkg/smsgw"
	"github.com/learnnect/platform-api/internal/pkg/validator"
	"github.com/learnnect/platform-api/internal/verification/inbound"
	"github.com/learnnect/platform-api/internal/verification/outbound/delivery"
	"github.com/learnnect/platform-api/internal/verification/outbound/store"
	"github.com/learnnect/platform-api/internal/verification/usecase"
	"github.com/redis/go-redis/v9"
)

type Dependency struct {
	CacheConn  *redis.Client              `validate:"required"`
	Mailer     mail.Mail                  `validate:"required"`
	SMSGateway smsgw.SMS                  `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	HMAC       hash.Hash                  `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) (*usecase.Usecase, error) {
	if err := dep.Validator.Validate(dep); err != nil {
		return nil, err
	}

	uc := usecase.New(usecase.Dependency{
		Store:      store.NewRedis(dep.CacheConn, dep.Instrument),
		Email:      delivery.NewEmail(dep.Mailer, dep.Config.GetString("mail.from"), dep.Instrument),
		SMS:        delivery.NewSMS(dep.SMSGateway, dep.Instrument),
		HMAC:       dep.HMAC,
		Clock:      dep.Clock,
		Config:     dep.Config,
		Validator:  dep.Validator,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return uc, nil
}
