package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/learnnect/platform-api/internal/pkg/config"
	"github.com/learnnect/platform-api/internal/pkg/goerror"
	"github.com/learnnect/platform-api/internal/pkg/hash"
	"github.com/learnnect/platform-api/internal/pkg/instrument"
	"github.com/learnnect/platform-api/internal/pkg/validator"
	"github.com/learnnect/platform-api/internal/verification/entity"
)

type fakeStore struct {
	records map[string]entity.Record
	putErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[string]entity.Record{}}
}

func (f *fakeStore) Put(_ context.Context, key string, rec entity.Record, _ time.Duration) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.records[key] = rec
	return nil
}

func (f *fakeStore) Get(_ context.Context, key string) (*entity.Record, error) {
	rec, ok := f.records[key]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &rec, nil
}

func (f *fakeStore) Update(_ context.Context, key string, rec entity.Record, _ time.Duration) error {
	f.records[key] = rec
	return nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	delete(f.records, key)
	return nil
}

type fakeEmail struct {
	lastCode string
	sends    int
	err      error
}

func (f *fakeEmail) SendCode(_ context.Context, _ string, _ entity.Purpose, code string, _ time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.lastCode = code
	f.sends++
	return nil
}

type fakeSMS struct {
	lastCode string
	sends    int
}

func (f *fakeSMS) SendCode(_ context.Context, _ string, code string, _ time.Duration) error {
	f.lastCode = code
	f.sends++
	return nil
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

// stubConfig returns zero values for every key so the usecase falls back
// to its built-in defaults (10 minute expiry, 3 attempts).
type stubConfig struct {
	config.Config
}

func (stubConfig) GetMinute(string) time.Duration { return 0 }
func (stubConfig) GetInt(string) int              { return 0 }

type fixture struct {
	uc    *Usecase
	store *fakeStore
	email *fakeEmail
	sms   *fakeSMS
	clock *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	st := newFakeStore()
	em := &fakeEmail{}
	sm := &fakeSMS{}
	cl := &fakeClock{now: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)}

	uc := New(Dependency{
		Store:      st,
		Email:      em,
		SMS:        sm,
		HMAC:       hash.NewHMACSHA256("test-secret"),
		Clock:      cl,
		Config:     stubConfig{},
		Validator:  v,
		Instrument: instrument.NewNoop(),
	})

	return &fixture{uc: uc, store: st, email: em, sms: sm, clock: cl}
}

func TestGenerateCodeFormat(t *testing.T) {
	re := regexp.MustCompile(`^\d{6}$`)
	for range 200 {
		code, err := generateCode()
		if err != nil {
			t.Fatalf("generateCode: %v", err)
		}
		if !re.MatchString(code) {
			t.Fatalf("code %q is not 6 digits", code)
		}
	}
}

func TestSendEmailOTPThenWrongCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.uc.SendEmailOTP(ctx, SendEmailOTPInput{Destination: "user@test.com", Purpose: entity.PurposeSignup})
	if err != nil {
		t.Fatalf("SendEmailOTP: %v", err)
	}
	if !out.Sent {
		t.Fatalf("SendEmailOTP: sent = false, message %q", out.Message)
	}
	if out.Message != "OTP sent to user@test.com. Please check your inbox." {
		t.Errorf("message = %q", out.Message)
	}

	wrong := "000000"
	if wrong == f.email.lastCode {
		wrong = "000001"
	}

	vr, err := f.uc.VerifyOTP(ctx, VerifyOTPInput{Destination: "user@test.com", Code: wrong, Channel: entity.ChannelEmail})
	if err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	if vr.Verified {
		t.Fatal("wrong code verified")
	}
	if vr.RemainingAttempts == nil || *vr.RemainingAttempts != 2 {
		t.Fatalf("remaining = %v, want 2", vr.RemainingAttempts)
	}
	if vr.Message != "Incorrect OTP. 2 attempts remaining." {
		t.Errorf("message = %q", vr.Message)
	}
}

func TestVerifyOTPExhaustsBudget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.uc.SendEmailOTP(ctx, SendEmailOTPInput{Destination: "user@test.com", Purpose: entity.PurposeSignup}); err != nil {
		t.Fatalf("SendEmailOTP: %v", err)
	}
	correct := f.email.lastCode

	wrong := "000000"
	if wrong == correct {
		wrong = "000001"
	}

	in := VerifyOTPInput{Destination: "user@test.com", Code: wrong, Channel: entity.ChannelEmail}

	for i, wantRemaining := range []int{2, 1} {
		vr, err := f.uc.VerifyOTP(ctx, in)
		if err != nil {
			t.Fatalf("VerifyOTP #%d: %v", i+1, err)
		}
		if vr.RemainingAttempts == nil || *vr.RemainingAttempts != wantRemaining {
			t.Fatalf("attempt %d: remaining = %v, want %d", i+1, vr.RemainingAttempts, wantRemaining)
		}
	}

	vr, err := f.uc.VerifyOTP(ctx, in)
	if err != nil {
		t.Fatalf("VerifyOTP #3: %v", err)
	}
	if vr.Message != MsgExhausted {
		t.Fatalf("third failure message = %q, want exhaustion", vr.Message)
	}
	if len(f.store.records) != 0 {
		t.Fatal("record still exists after exhaustion")
	}

	vr, err = f.uc.VerifyOTP(ctx, VerifyOTPInput{Destination: "user@test.com", Code: correct, Channel: entity.ChannelEmail})
	if err != nil {
		t.Fatalf("VerifyOTP after exhaustion: %v", err)
	}
	if vr.Verified || vr.Message != MsgNotFound {
		t.Fatalf("correct code after exhaustion: verified=%v message=%q", vr.Verified, vr.Message)
	}
}

func TestVerifyOTPSingleUse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.uc.SendEmailOTP(ctx, SendEmailOTPInput{Destination: "user@test.com", Purpose: entity.PurposeLogin}); err != nil {
		t.Fatalf("SendEmailOTP: %v", err)
	}

	in := VerifyOTPInput{Destination: "user@test.com", Code: f.email.lastCode, Channel: entity.ChannelEmail}

	vr, err := f.uc.VerifyOTP(ctx, in)
	if err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	if !vr.Verified || vr.Message != MsgVerified {
		t.Fatalf("verified=%v message=%q", vr.Verified, vr.Message)
	}

	vr, err = f.uc.VerifyOTP(ctx, in)
	if err != nil {
		t.Fatalf("second VerifyOTP: %v", err)
	}
	if vr.Verified || vr.Message != MsgNotFound {
		t.Fatalf("second use: verified=%v message=%q", vr.Verified, vr.Message)
	}
}

func TestVerifyOTPAtExpiryBoundary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.uc.SendEmailOTP(ctx, SendEmailOTPInput{Destination: "user@test.com", Purpose: entity.PurposeSignup}); err != nil {
		t.Fatalf("SendEmailOTP: %v", err)
	}

	f.clock.now = f.clock.now.Add(10 * time.Minute)

	vr, err := f.uc.VerifyOTP(ctx, VerifyOTPInput{Destination: "user@test.com", Code: f.email.lastCode, Channel: entity.ChannelEmail})
	if err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	if vr.Verified || vr.Message != MsgExpired {
		t.Fatalf("at expiry: verified=%v message=%q", vr.Verified, vr.Message)
	}
	if len(f.store.records) != 0 {
		t.Fatal("expired record not deleted")
	}
}

func TestResendOTPInvalidatesPriorCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.uc.SendEmailOTP(ctx, SendEmailOTPInput{Destination: "user@test.com", Purpose: entity.PurposeSignup}); err != nil {
		t.Fatalf("SendEmailOTP: %v", err)
	}
	oldCode := f.email.lastCode

	out, err := f.uc.ResendOTP(ctx, ResendOTPInput{Destination: "user@test.com", Channel: entity.ChannelEmail, Purpose: entity.PurposeSignup})
	if err != nil {
		t.Fatalf("ResendOTP: %v", err)
	}
	if !out.Sent {
		t.Fatalf("ResendOTP: sent = false, message %q", out.Message)
	}

	if oldCode != f.email.lastCode {
		vr, err := f.uc.VerifyOTP(ctx, VerifyOTPInput{Destination: "user@test.com", Code: oldCode, Channel: entity.ChannelEmail})
		if err != nil {
			t.Fatalf("VerifyOTP: %v", err)
		}
		if vr.Verified {
			t.Fatal("old code still verifies after resend")
		}
	}

	vr, err := f.uc.VerifyOTP(ctx, VerifyOTPInput{Destination: "user@test.com", Code: f.email.lastCode, Channel: entity.ChannelEmail})
	if err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	if !vr.Verified {
		t.Fatalf("new code rejected: %q", vr.Message)
	}
}

func TestSendSMSOTPRejectsInvalidNumber(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.uc.SendSMSOTP(ctx, SendSMSOTPInput{Destination: "5551234567", Purpose: entity.PurposePhoneVerification})
	if err != nil {
		t.Fatalf("SendSMSOTP: %v", err)
	}
	if out.Sent {
		t.Fatal("invalid number accepted")
	}
	if out.Message != MsgInvalidPhone {
		t.Errorf("message = %q", out.Message)
	}
	if len(f.store.records) != 0 {
		t.Error("record created for invalid number")
	}
	if f.sms.sends != 0 {
		t.Error("provider called for invalid number")
	}
}

func TestSendSMSOTPValidNumber(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.uc.SendSMSOTP(ctx, SendSMSOTPInput{Destination: "9876543210", Purpose: entity.PurposePhoneVerification})
	if err != nil {
		t.Fatalf("SendSMSOTP: %v", err)
	}
	if !out.Sent {
		t.Fatalf("sent = false, message %q", out.Message)
	}
	if out.Message != "OTP sent to +919876543210. Please check your messages." {
		t.Errorf("message = %q", out.Message)
	}

	vr, err := f.uc.VerifyOTP(ctx, VerifyOTPInput{Destination: "9876543210", Code: f.sms.lastCode, Channel: entity.ChannelSMS})
	if err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	if !vr.Verified {
		t.Fatalf("sms code rejected: %q", vr.Message)
	}
}

func TestSendEmailOTPDeliveryFailure(t *testing.T) {
	f := newFixture(t)
	f.email.err = errors.New("provider down")

	out, err := f.uc.SendEmailOTP(context.Background(), SendEmailOTPInput{Destination: "user@test.com", Purpose: entity.PurposeSignup})
	if err != nil {
		t.Fatalf("SendEmailOTP: %v", err)
	}
	if out.Sent {
		t.Fatal("sent = true with failing provider")
	}
	if out.Message != MsgSendFailed {
		t.Errorf("message = %q", out.Message)
	}
}
