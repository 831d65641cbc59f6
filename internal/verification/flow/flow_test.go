package flow

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/learnnect/platform-api/internal/verification/entity"
	"github.com/learnnect/platform-api/internal/verification/usecase"
)

type fakeVerifier struct {
	mu      sync.Mutex
	code    string
	left    int
	verifys int
	resends int
}

func (f *fakeVerifier) VerifyOTP(_ context.Context, in usecase.VerifyOTPInput) (*usecase.VerifyOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.verifys++

	if in.Code == f.code {
		return &usecase.VerifyOutput{Verified: true, Message: usecase.MsgVerified}, nil
	}

	f.left--
	if f.left <= 0 {
		return &usecase.VerifyOutput{Verified: false, Message: usecase.MsgExhausted}, nil
	}

	left := f.left
	return &usecase.VerifyOutput{Verified: false, Message: "Incorrect OTP.", RemainingAttempts: &left}, nil
}

func (f *fakeVerifier) ResendOTP(context.Context, usecase.ResendOTPInput) (*usecase.SendOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.resends++
	return &usecase.SendOutput{Sent: true, Message: "OTP sent to user@test.com. Please check your inbox."}, nil
}

func (f *fakeVerifier) verifyCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.verifys
}

func (f *fakeVerifier) resendCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resends
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func typeCode(s *Session, code string) {
	for i := range len(code) {
		s.TypeDigit(code[i])
	}
}

func TestTypingSixDigitsTriggersVerification(t *testing.T) {
	fv := &fakeVerifier{code: "123456", left: 3}

	var verified sync.WaitGroup
	verified.Add(1)

	s := NewSession(fv, Config{
		Destination:   "user@test.com",
		Channel:       entity.ChannelEmail,
		Purpose:       entity.PurposeSignup,
		VerifiedDelay: time.Millisecond,
		OnVerified:    verified.Done,
	})
	defer s.Close()

	typeCode(s, "123456")

	waitFor(t, func() bool { return s.Snapshot().State == StateVerified })

	if fv.verifyCalls() != 1 {
		t.Fatalf("verify calls = %d, want 1", fv.verifyCalls())
	}

	verified.Wait()
}

func TestFocusAdvancesAndBackspaceRetreats(t *testing.T) {
	fv := &fakeVerifier{code: "123456", left: 3}
	s := NewSession(fv, Config{Destination: "user@test.com", Channel: entity.ChannelEmail})
	defer s.Close()

	s.TypeDigit('1')
	s.TypeDigit('2')

	if snap := s.Snapshot(); snap.Focus != 2 {
		t.Fatalf("focus = %d, want 2", snap.Focus)
	}

	// Focused cell is empty, so backspace moves back and clears.
	s.Backspace()
	if snap := s.Snapshot(); snap.Focus != 1 || snap.Cells[1] != 0 {
		t.Fatalf("after backspace: focus = %d cells[1] = %q", snap.Focus, snap.Cells[1])
	}

	if fv.verifyCalls() != 0 {
		t.Fatal("verification triggered before six digits")
	}
}

func TestWrongCodeReturnsToEntry(t *testing.T) {
	fv := &fakeVerifier{code: "123456", left: 3}
	s := NewSession(fv, Config{Destination: "user@test.com", Channel: entity.ChannelEmail})
	defer s.Close()

	typeCode(s, "000000")

	waitFor(t, func() bool {
		snap := s.Snapshot()
		return snap.State == StateEnteringCode && snap.Message != ""
	})

	snap := s.Snapshot()
	if snap.RemainingAttempts == nil || *snap.RemainingAttempts != 2 {
		t.Fatalf("remaining = %v, want 2", snap.RemainingAttempts)
	}
	if snap.Cells != ([CellCount]byte{}) || snap.Focus != 0 {
		t.Fatal("cells not cleared after wrong code")
	}
}

func TestExhaustionAutoCloses(t *testing.T) {
	fv := &fakeVerifier{code: "123456", left: 1}

	var closed sync.WaitGroup
	closed.Add(1)

	s := NewSession(fv, Config{
		Destination:    "user@test.com",
		Channel:        entity.ChannelEmail,
		AutoCloseDelay: time.Millisecond,
		OnClose:        closed.Done,
	})

	typeCode(s, "000000")

	closed.Wait()

	if snap := s.Snapshot(); snap.State != StateClosed {
		t.Fatalf("state = %q, want closed", snap.State)
	}
}

func TestCountdownExpiryEnablesResendWithoutClosing(t *testing.T) {
	fv := &fakeVerifier{code: "123456", left: 3}
	s := NewSession(fv, Config{
		Destination:    "user@test.com",
		Channel:        entity.ChannelEmail,
		Countdown:      20 * time.Millisecond,
		ResendCooldown: time.Hour,
		Tick:           5 * time.Millisecond,
	})
	defer s.Close()

	waitFor(t, func() bool { return s.Snapshot().Expired })

	snap := s.Snapshot()
	if !snap.CanResend {
		t.Fatal("resend not enabled after expiry")
	}
	if snap.State != StateEnteringCode {
		t.Fatalf("state = %q, expiry must not close the session", snap.State)
	}
}

func TestCooldownEnablesResendIndependently(t *testing.T) {
	fv := &fakeVerifier{code: "123456", left: 3}
	s := NewSession(fv, Config{
		Destination:    "user@test.com",
		Channel:        entity.ChannelEmail,
		Countdown:      time.Hour,
		ResendCooldown: 20 * time.Millisecond,
		Tick:           5 * time.Millisecond,
	})
	defer s.Close()

	if s.Snapshot().CanResend {
		t.Fatal("resend enabled before cooldown elapsed")
	}

	waitFor(t, func() bool { return s.Snapshot().CanResend })

	if s.Snapshot().Expired {
		t.Fatal("cooldown must not mark the code expired")
	}
}

func TestResendResetsTimersAndCells(t *testing.T) {
	fv := &fakeVerifier{code: "123456", left: 3}
	s := NewSession(fv, Config{
		Destination:    "user@test.com",
		Channel:        entity.ChannelEmail,
		Countdown:      time.Hour,
		ResendCooldown: 50 * time.Millisecond,
		Tick:           5 * time.Millisecond,
	})
	defer s.Close()

	s.TypeDigit('1')
	s.TypeDigit('2')

	waitFor(t, func() bool { return s.Snapshot().CanResend })

	out, err := s.Resend(context.Background())
	if err != nil {
		t.Fatalf("Resend: %v", err)
	}
	if !out.Sent {
		t.Fatalf("resend failed: %q", out.Message)
	}

	snap := s.Snapshot()
	if snap.Cells != ([CellCount]byte{}) || snap.Focus != 0 {
		t.Fatal("cells not cleared after resend")
	}
	if snap.CanResend {
		t.Fatal("cooldown not restarted after resend")
	}
	if fv.resendCalls() != 1 {
		t.Fatalf("resend calls = %d, want 1", fv.resendCalls())
	}
}
