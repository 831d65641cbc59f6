package app

import (
	"log/slog"
	"os"

	"github.com/learnnect/platform-api/internal/account"
	"github.com/learnnect/platform-api/internal/chatbot"
	"github.com/learnnect/platform-api/internal/engagement"
	"github.com/learnnect/platform-api/internal/notification"
	"github.com/learnnect/platform-api/internal/review"
	"github.com/learnnect/platform-api/internal/verification"
	verificationuc "github.com/learnnect/platform-api/internal/verification/usecase"
)

func (a *App) initModules() {
	// The verification usecase is shared: engagement and account call it
	// directly instead of going through HTTP.
	var otpUC *verificationuc.Usecase

	if a.config.GetBool("modules.verification.enabled") {
		uc, err := verification.New(verification.Dependency{
			CacheConn:  a.cacheConn,
			Mailer:     a.mail,
			SMSGateway: a.sms,
			Router:     a.router,
			Config:     a.config,
			Instrument: a.ins,
			HMAC:       a.hmac,
			Clock:      a.clock,
			Validator:  a.validator,
		})
		if err != nil {
			slog.Error("failed to init module verification", "error", err)
			os.Exit(1)
		}
		otpUC = uc
	}

	if a.config.GetBool("modules.engagement.enabled") {
		if err := engagement.New(engagement.Dependency{
			DBConn:      a.dbConn,
			CacheConn:   a.cacheConn,
			Messaging:   a.messaging,
			Storage:     a.storage,
			OTP:         otpUC,
			Idempotency: a.idemp,
			Enforcer:    a.casbin,
			Goroutine:   a.goroutine,
			Router:      a.router,
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			Keys:        a.oid,
			Clock:       a.clock,
			Validator:   a.validator,
		}); err != nil {
			slog.Error("failed to init module engagement", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.review.enabled") {
		if err := review.New(review.Dependency{
			DBConn:     a.dbConn,
			Messaging:  a.messaging,
			Enforcer:   a.casbin,
			Goroutine:  a.goroutine,
			Router:     a.router,
			Instrument: a.ins,
			UID:        a.uid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module review", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.account.enabled") {
		if err := account.New(account.Dependency{
			DBConn:     a.dbConn,
			OTP:        otpUC,
			Bcrypt:     a.bcrypt,
			JWT:        a.jwt,
			Router:     a.router,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module account", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.chatbot.enabled") {
		if err := chatbot.New(chatbot.Dependency{
			CacheConn:  a.cacheConn,
			Router:     a.router,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uuid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module chatbot", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(notification.Dependency{
			Ctx:        a.ctx,
			Messaging:  a.messaging,
			Mail:       a.mail,
			Goroutine:  a.goroutine,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
