// Package chatbot runs the public site's assistant: Redis-backed chat
// sessions proxied to a remote AI backend, with canned fallbacks when
// the backend is unreachable.
package chatbot

import (
	"github.com/learnnect/platform-api/internal/chatbot/inbound"
	"github.com/learnnect/platform-api/internal/chatbot/outbound/aiapi"
	"github.com/learnnect/platform-api/internal/chatbot/outbound/store"
	"github.com/learnnect/platform-api/internal/chatbot/usecase"
	"github.com/learnnect/platform-api/internal/pkg/clock"
	"github.com/learnnect/platform-api/internal/pkg/config"
	"github.com/learnnect/platform-api/internal/pkg/instrument"
	"github.com/learnnect/platform-api/internal/pkg/router"
	"github.com/learnnect/platform-api/internal/pkg/uid"
	"github.com/learnnect/platform-api/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
)

type Dependency struct {
	CacheConn  *redis.Client              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.StringID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	ai, err := aiapi.New(aiapi.Config{
		BaseURL: dep.Config.GetString("modules.chatbot.ai_backend_url"),
		Timeout: dep.Config.GetSecond("modules.chatbot.ai_timeout_seconds"),
	})
	if err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		Store:      store.NewRedis(dep.CacheConn, dep.Instrument),
		AI:         ai,
		UID:        dep.UID,
		Clock:      dep.Clock,
		Config:     dep.Config,
		Validator:  dep.Validator,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
