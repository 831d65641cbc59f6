// Package account owns user accounts: registration gated by email
// verification, password and Google sign-in, and password recovery.
package account

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/learnnect/platform-api/internal/account/inbound"
	"github.com/learnnect/platform-api/internal/account/outbound/db"
	"github.com/learnnect/platform-api/internal/account/outbound/googleauth"
	"github.com/learnnect/platform-api/internal/account/usecase"
	"github.com/learnnect/platform-api/internal/pkg/clock"
	"github.com/learnnect/platform-api/internal/pkg/config"
	"github.com/learnnect/platform-api/internal/pkg/hash"
	"github.com/learnnect/platform-api/internal/pkg/instrument"
	"github.com/learnnect/platform-api/internal/pkg/jwt"
	"github.com/learnnect/platform-api/internal/pkg/router"
	"github.com/learnnect/platform-api/internal/pkg/uid"
	"github.com/learnnect/platform-api/internal/pkg/validator"
	verificationuc "github.com/learnnect/platform-api/internal/verification/usecase"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	OTP        *verificationuc.Usecase    `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	google, err := googleauth.New(googleauth.Config{
		ClientID:     dep.Config.GetString("modules.account.google.client_id"),
		ClientSecret: dep.Config.GetString("modules.account.google.client_secret"),
		RedirectURL:  dep.Config.GetString("modules.account.google.redirect_url"),
		Timeout:      dep.Config.GetSecond("modules.account.google.timeout_seconds"),
	})
	if err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:     db.NewDB(dep.DBConn, dep.Instrument),
		OTP:        dep.OTP,
		Google:     google,
		Bcrypt:     dep.Bcrypt,
		JWT:        dep.JWT,
		UID:        dep.UID,
		Clock:      dep.Clock,
		Config:     dep.Config,
		Validator:  dep.Validator,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
