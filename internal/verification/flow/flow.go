// Package flow drives a single verification session: the digit cells, the
// expiry countdown, the resend cooldown, and the per-attempt feedback. It
// is the headless counterpart of the verification dialog a client renders;
// clients observe it through Snapshot and the two terminal callbacks.
package flow

import (
	"context"
	"sync"
	"time"

	"github.com/learnnect/platform-api/internal/verification/entity"
	"github.com/learnnect/platform-api/internal/verification/usecase"
)

// CellCount is the number of digit cells in a session.
const CellCount = 6

// State is the phase a session is in.
type State string

const (
	StateEnteringCode State = "entering_code"
	StateVerifying    State = "verifying"
	StateVerified     State = "verified"
	StateClosed       State = "closed"
)

type verifier interface {
	VerifyOTP(ctx context.Context, in usecase.VerifyOTPInput) (*usecase.VerifyOutput, error)
	ResendOTP(ctx context.Context, in usecase.ResendOTPInput) (*usecase.SendOutput, error)
}

// Config configures a session. Zero durations fall back to the defaults
// the frontend dialog uses: 600s countdown, 60s resend cooldown, 1.5s
// verified display, 3s auto close.
type Config struct {
	Destination string
	Channel     entity.Channel
	Purpose     entity.Purpose

	Countdown      time.Duration
	ResendCooldown time.Duration
	VerifiedDelay  time.Duration
	AutoCloseDelay time.Duration
	Tick           time.Duration

	// OnVerified fires once, after the verified state has been shown for
	// VerifiedDelay. OnClose fires on Close and on attempt exhaustion.
	OnVerified func()
	OnClose    func()
}

func (c *Config) applyDefaults() {
	if c.Countdown <= 0 {
		c.Countdown = 600 * time.Second
	}
	if c.ResendCooldown <= 0 {
		c.ResendCooldown = 60 * time.Second
	}
	if c.VerifiedDelay <= 0 {
		c.VerifiedDelay = 1500 * time.Millisecond
	}
	if c.AutoCloseDelay <= 0 {
		c.AutoCloseDelay = 3 * time.Second
	}
	if c.Tick <= 0 {
		c.Tick = time.Second
	}
}

// Snapshot is an observable copy of the session state.
type Snapshot struct {
	State             State
	Cells             [CellCount]byte
	Focus             int
	Remaining         time.Duration
	Cooldown          time.Duration
	Expired           bool
	CanResend         bool
	Message           string
	RemainingAttempts *int
}

// Session is a live verification flow. The expiry countdown and the
// resend cooldown run independently; reaching either limit enables
// resend, and only the countdown marks the code as expired. Expiry does
// not close the session.
type Session struct {
	cfg Config
	uc  verifier

	mu                sync.Mutex
	state             State
	cells             [CellCount]byte
	focus             int
	remaining         time.Duration
	cooldown          time.Duration
	expired           bool
	message           string
	remainingAttempts *int
	generation        int

	cancel context.CancelFunc
	done   chan struct{}
}

// NewSession starts a session and its ticker.
func NewSession(uc verifier, cfg Config) *Session {
	cfg.applyDefaults()

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		cfg:       cfg,
		uc:        uc,
		state:     StateEnteringCode,
		remaining: cfg.Countdown,
		cooldown:  cfg.ResendCooldown,
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	go s.run(ctx)

	return s
}

func (s *Session) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.cfg.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Session) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return
	}

	if s.remaining > 0 {
		s.remaining -= s.cfg.Tick
		if s.remaining <= 0 {
			s.remaining = 0
			s.expired = true
		}
	}

	if s.cooldown > 0 {
		s.cooldown -= s.cfg.Tick
		if s.cooldown < 0 {
			s.cooldown = 0
		}
	}
}

// TypeDigit puts a digit into the focused cell and advances focus.
// Filling the last cell submits the code for verification; no explicit
// confirm step exists.
func (s *Session) TypeDigit(d byte) {
	s.mu.Lock()

	if s.state != StateEnteringCode || d < '0' || d > '9' {
		s.mu.Unlock()
		return
	}

	s.cells[s.focus] = d
	if s.focus < CellCount-1 {
		s.focus++
		s.mu.Unlock()
		return
	}

	for _, c := range s.cells {
		if c == 0 {
			s.mu.Unlock()
			return
		}
	}

	code := string(s.cells[:])
	s.state = StateVerifying
	s.message = ""
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	go s.verify(gen, code)
}

// Backspace clears the focused cell, or moves focus back when the cell is
// already empty.
func (s *Session) Backspace() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateEnteringCode {
		return
	}

	if s.cells[s.focus] != 0 {
		s.cells[s.focus] = 0
		return
	}

	if s.focus > 0 {
		s.focus--
		s.cells[s.focus] = 0
	}
}

func (s *Session) verify(gen int, code string) {
	out, err := s.uc.VerifyOTP(context.Background(), usecase.VerifyOTPInput{
		Destination: s.cfg.Destination,
		Code:        code,
		Channel:     s.cfg.Channel,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	// A resend or close since submission makes this result stale.
	if gen != s.generation || s.state != StateVerifying {
		return
	}

	if err != nil {
		s.state = StateEnteringCode
		s.clearCellsLocked()
		s.message = usecase.MsgVerifyFailed
		return
	}

	if out.Verified {
		s.state = StateVerified
		s.message = out.Message
		time.AfterFunc(s.cfg.VerifiedDelay, func() {
			if s.cfg.OnVerified != nil {
				s.cfg.OnVerified()
			}
		})
		return
	}

	s.state = StateEnteringCode
	s.clearCellsLocked()
	s.message = out.Message
	s.remainingAttempts = out.RemainingAttempts

	exhausted := out.RemainingAttempts != nil && *out.RemainingAttempts == 0
	if exhausted || out.Message == usecase.MsgExhausted {
		time.AfterFunc(s.cfg.AutoCloseDelay, s.Close)
	}
}

// Resend asks for a fresh code. On success both timers restart and the
// cells clear; until then the session stays usable.
func (s *Session) Resend(ctx context.Context) (*usecase.SendOutput, error) {
	s.mu.Lock()
	if s.state == StateClosed || s.state == StateVerified {
		s.mu.Unlock()
		return nil, nil
	}
	if !s.canResendLocked() {
		s.mu.Unlock()
		return &usecase.SendOutput{Sent: false, Message: usecase.MsgResendFailed}, nil
	}
	s.generation++
	s.mu.Unlock()

	out, err := s.uc.ResendOTP(ctx, usecase.ResendOTPInput{
		Destination: s.cfg.Destination,
		Channel:     s.cfg.Channel,
		Purpose:     s.cfg.Purpose,
	})
	if err != nil {
		return nil, err
	}

	if out.Sent {
		s.mu.Lock()
		s.state = StateEnteringCode
		s.clearCellsLocked()
		s.remaining = s.cfg.Countdown
		s.cooldown = s.cfg.ResendCooldown
		s.expired = false
		s.message = ""
		s.remainingAttempts = nil
		s.mu.Unlock()
	}

	return out, nil
}

// Close ends the session, stops the ticker, and fires OnClose once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return
	}
	s.state = StateClosed
	s.generation++
	s.mu.Unlock()

	s.cancel()
	<-s.done

	if s.cfg.OnClose != nil {
		s.cfg.OnClose()
	}
}

// Snapshot returns a copy of the current view state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		State:             s.state,
		Cells:             s.cells,
		Focus:             s.focus,
		Remaining:         s.remaining,
		Cooldown:          s.cooldown,
		Expired:           s.expired,
		CanResend:         s.canResendLocked(),
		Message:           s.message,
		RemainingAttempts: s.remainingAttempts,
	}
}

func (s *Session) canResendLocked() bool {
	return s.expired || s.cooldown <= 0
}

func (s *Session) clearCellsLocked() {
	s.cells = [CellCount]byte{}
	s.focus = 0
}
