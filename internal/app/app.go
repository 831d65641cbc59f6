package app

import (
	"context"
	"net/http"

	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/learnnect/platform-api/internal/pkg/clock"
	"github.com/learnnect/platform-api/internal/pkg/config"
	"github.com/learnnect/platform-api/internal/pkg/goroutine"
	"github.com/learnnect/platform-api/internal/pkg/hash"
	"github.com/learnnect/platform-api/internal/pkg/idempotency"
	"github.com/learnnect/platform-api/internal/pkg/instrument"
	"github.com/learnnect/platform-api/internal/pkg/jwt"
	"github.com/learnnect/platform-api/internal/pkg/mail"
	"github.com/learnnect/platform-api/internal/pkg/messaging"
	"github.com/learnnect/platform-api/internal/pkg/router"
	"github.com/learnnect/platform-api/internal/pkg/smsgw"
	"github.com/learnnect/platform-api/internal/pkg/storage"
	"github.com/learnnect/platform-api/internal/pkg/uid"
	"github.com/learnnect/platform-api/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      hash.Hash
	bcrypt    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	oid       uid.StringID
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	mail      mail.Mail
	sms       smsgw.SMS
	messaging messaging.Messaging
	storage   storage.Storage
	casbin    *casbin.Enforcer

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initSMS()
	app.initStorage()
	app.initMessaging()
	app.initCasbin()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
