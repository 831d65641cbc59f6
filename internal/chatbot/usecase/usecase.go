package usecase

import (
	"context"
	"time"

	"github.com/learnnect/platform-api/internal/chatbot/entity"
	"github.com/learnnect/platform-api/internal/chatbot/outbound/aiapi"
	"github.com/learnnect/platform-api/internal/pkg/clock"
	"github.com/learnnect/platform-api/internal/pkg/config"
	"github.com/learnnect/platform-api/internal/pkg/instrument"
	"github.com/learnnect/platform-api/internal/pkg/uid"
	"github.com/learnnect/platform-api/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoStore interface {
	Put(ctx context.Context, sess entity.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}

type aiBackend interface {
	Chat(ctx context.Context, in aiapi.ChatInput) (*aiapi.ChatOutput, error)
}

// Usecase runs visitor chat sessions: it proxies messages to the AI
// backend and degrades to canned responses when the backend is down.
type Usecase struct {
	store     repoStore
	ai        aiBackend
	uid       uid.StringID
	clock     clock.Clocker
	cfg       config.Config
	validator validator.Validator
	ins       instrument.Instrumentation
}

type Dependency struct {
	Store      repoStore
	AI         aiBackend
	UID        uid.StringID
	Clock      clock.Clocker
	Config     config.Config
	Validator  validator.Validator
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		store:     dep.Store,
		ai:        dep.AI,
		uid:       dep.UID,
		clock:     dep.Clock,
		cfg:       dep.Config,
		validator: dep.Validator,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("chatbot.usecase").Start(ctx, name)
}

func (s *Usecase) sessionTTL() time.Duration {
	if d := s.cfg.GetMinute("modules.chatbot.session_ttl_minutes"); d > 0 {
		return d
	}
	return 30 * time.Minute
}

func (s *Usecase) historyLimit() int {
	if n := s.cfg.GetInt("modules.chatbot.history_limit"); n > 0 {
		return n
	}
	return 20
}
