package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/learnnect/platform-api/internal/pkg/clock"
	"github.com/learnnect/platform-api/internal/pkg/config"
	"github.com/learnnect/platform-api/internal/pkg/hash"
	"github.com/learnnect/platform-api/internal/pkg/instrument"
	"github.com/learnnect/platform-api/internal/pkg/validator"
	"github.com/learnnect/platform-api/internal/verification/entity"
	"go.opentelemetry.io/otel/trace"
)

// User-facing outcome messages. These are part of the API contract with
// the frontend and are asserted verbatim by its tests.
const (
	MsgInvalidPhone = "Please enter a valid Indian phone number starting with 6, 7, 8, or 9"
	MsgSendFailed   = "Failed to send OTP. Please try again."
	MsgResendFailed = "Failed to resend OTP. Please try again."
	MsgVerifyFailed = "Failed to verify OTP. Please try again."
	MsgNotFound     = "OTP not found or expired. Please request a new one."
	MsgExpired      = "OTP has expired. Please request a new one."
	MsgExhausted    = "Maximum verification attempts exceeded. Please request a new OTP."
	MsgVerified     = "OTP verified successfully!"
)

func msgEmailSent(email string) string {
	return fmt.Sprintf("OTP sent to %s. Please check your inbox.", email)
}

func msgSMSSent(phone string) string {
	return fmt.Sprintf("OTP sent to +91%s. Please check your messages.", phone)
}

func msgIncorrect(remaining int) string {
	return fmt.Sprintf("Incorrect OTP. %d attempts remaining.", remaining)
}

type store interface {
	Put(ctx context.Context, key string, rec entity.Record, ttl time.Duration) error
	Get(ctx context.Context, key string) (*entity.Record, error)
	Update(ctx context.Context, key string, rec entity.Record, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type emailDelivery interface {
	SendCode(ctx context.Context, email string, purpose entity.Purpose, code string, expiry time.Duration) error
}

type smsDelivery interface {
	SendCode(ctx context.Context, mobile, code string, expiry time.Duration) error
}

// Usecase orchestrates one-time-code issuance, persistence, delivery, and
// verification. Expected outcomes (wrong code, expired, exhausted) are
// reported in the output structs, never as errors; errors are reserved for
// malformed input and infrastructure failures that have no user story.
type Usecase struct {
	store     store
	email     emailDelivery
	sms       smsDelivery
	hmac      hash.Hash
	clock     clock.Clocker
	cfg       config.Config
	validator validator.Validator
	ins       instrument.Instrumentation
}

type Dependency struct {
	Store      store
	Email      emailDelivery
	SMS        smsDelivery
	HMAC       hash.Hash
	Clock      clock.Clocker
	Config     config.Config
	Validator  validator.Validator
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		store:     dep.Store,
		email:     dep.Email,
		sms:       dep.SMS,
		hmac:      dep.HMAC,
		clock:     dep.Clock,
		cfg:       dep.Config,
		validator: dep.Validator,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("verification.usecase").Start(ctx, name)
}

func (s *Usecase) expiry() time.Duration {
	if d := s.cfg.GetMinute("modules.verification.otp_expiry_minutes"); d > 0 {
		return d
	}
	return 10 * time.Minute
}

func (s *Usecase) maxAttempts() int {
	if n := s.cfg.GetInt("modules.verification.max_attempts"); n > 0 {
		return n
	}
	return 3
}

// storeTTL pads the record TTL past the expiry so the verify path can
// still observe an expired record and answer with the expiry message
// instead of a bare not-found.
func (s *Usecase) storeTTL() time.Duration {
	return s.expiry() + time.Minute
}

// generateCode returns exactly six numeric digits from crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

// newRecord builds a fresh record for a destination with the configured
// expiry and attempt budget.
func (s *Usecase) newRecord(ch entity.Channel, destination, code string, purpose entity.Purpose) (entity.Record, error) {
	codeHash, err := s.hmac.Hash(code)
	if err != nil {
		return entity.Record{}, err
	}

	now := s.clock.Now()

	return entity.Record{
		CodeHash:    string(codeHash),
		Destination: destination,
		Channel:     ch,
		Purpose:     purpose.Ensure(),
		ExpiresAt:   now.Add(s.expiry()),
		Attempts:    0,
		MaxAttempts: s.maxAttempts(),
		CreatedAt:   now,
	}, nil
}
