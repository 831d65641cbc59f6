package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/learnnect/platform-api/internal/chatbot/entity"
	"github.com/learnnect/platform-api/internal/chatbot/outbound/aiapi"
	"github.com/learnnect/platform-api/internal/pkg/config"
	"github.com/learnnect/platform-api/internal/pkg/goerror"
	"github.com/learnnect/platform-api/internal/pkg/instrument"
	"github.com/learnnect/platform-api/internal/pkg/validator"
)

type fakeStore struct {
	sessions map[string]entity.Session
	lastTTL  time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: map[string]entity.Session{}}
}

func (f *fakeStore) Put(_ context.Context, sess entity.Session, ttl time.Duration) error {
	f.sessions[sess.ID] = sess
	f.lastTTL = ttl
	return nil
}

func (f *fakeStore) Get(_ context.Context, id string) (*entity.Session, error) {
	sess, ok := f.sessions[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &sess, nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

type fakeAI struct {
	out   *aiapi.ChatOutput
	err   error
	calls []aiapi.ChatInput
}

func (f *fakeAI) Chat(_ context.Context, in aiapi.ChatInput) (*aiapi.ChatOutput, error) {
	f.calls = append(f.calls, in)
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

type seqUID struct {
	next int
}

func (s *seqUID) Generate() string {
	s.next++
	return fmt.Sprintf("sess-%03d", s.next)
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type stubConfig struct {
	config.Config
}

func (stubConfig) GetMinute(string) time.Duration { return 0 }
func (stubConfig) GetInt(string) int              { return 0 }

type fixture struct {
	uc    *Usecase
	store *fakeStore
	ai    *fakeAI
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	fst := newFakeStore()
	fai := &fakeAI{out: &aiapi.ChatOutput{Reply: "backend reply", Intent: "course_inquiry"}}

	uc := New(Dependency{
		Store:      fst,
		AI:         fai,
		UID:        &seqUID{},
		Clock:      &fakeClock{now: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)},
		Config:     stubConfig{},
		Validator:  v,
		Instrument: instrument.NewNoop(),
	})

	return &fixture{uc: uc, store: fst, ai: fai}
}

func createSession(t *testing.T, f *fixture) string {
	t.Helper()

	out, err := f.uc.CreateSession(context.Background(), CreateSessionInput{CourseContext: "/courses/data-science"})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	return out.Session.ID
}

func TestCreateSessionStoresWithTTL(t *testing.T) {
	f := newFixture(t)

	id := createSession(t, f)

	if _, ok := f.store.sessions[id]; !ok {
		t.Fatal("session not stored")
	}
	if f.store.lastTTL != 30*time.Minute {
		t.Fatalf("ttl = %v, want default 30m", f.store.lastTTL)
	}
}

func TestSendMessageProxiesToBackend(t *testing.T) {
	f := newFixture(t)
	id := createSession(t, f)

	out, err := f.uc.SendMessage(context.Background(), SendMessageInput{
		SessionID: id,
		Message:   "Tell me about the data science course",
	})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if out.Fallback {
		t.Fatal("backend answered, fallback must be false")
	}
	if out.Reply != "backend reply" {
		t.Fatalf("unexpected reply %q", out.Reply)
	}

	sess := f.store.sessions[id]
	if len(sess.Messages) != 2 {
		t.Fatalf("transcript length = %d, want 2", len(sess.Messages))
	}
	if sess.Messages[0].Role != entity.RoleUser || sess.Messages[1].Role != entity.RoleAssistant {
		t.Fatalf("unexpected transcript %+v", sess.Messages)
	}
	if got := f.ai.calls[0].CourseContext; got != "/courses/data-science" {
		t.Fatalf("course context = %q", got)
	}
}

func TestSendMessageFallsBackWhenBackendDown(t *testing.T) {
	f := newFixture(t)
	f.ai.err = errors.New("connection refused")
	id := createSession(t, f)

	out, err := f.uc.SendMessage(context.Background(), SendMessageInput{
		SessionID: id,
		Message:   "What is the price of the course?",
	})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if !out.Fallback {
		t.Fatal("expected fallback")
	}
	if out.Intent != "pricing_inquiry" {
		t.Fatalf("intent = %q, want pricing_inquiry", out.Intent)
	}

	// Fallback replies still land in the transcript.
	if sess := f.store.sessions[id]; len(sess.Messages) != 2 || !sess.Messages[1].Fallback {
		t.Fatalf("unexpected transcript %+v", sess.Messages)
	}
}

func TestSendMessageUnknownSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.SendMessage(context.Background(), SendMessageInput{
		SessionID: "missing",
		Message:   "hello",
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	var ge *goerror.Error
	if !errors.As(err, &ge) || ge.Msg() != "Chat session not found or expired" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestFallbackReplyIntents(t *testing.T) {
	tests := []struct {
		message string
		intent  string
	}{
		{"what does it cost", "pricing_inquiry"},
		{"which courses do you offer", "course_inquiry"},
		{"can I book a consultation", "booking_request"},
		{"hello there", "greeting"},
		{"I need support", "support_request"},
		{"lorem ipsum", "general_inquiry"},
	}

	for _, tc := range tests {
		if _, intent := fallbackReply(tc.message); intent != tc.intent {
			t.Errorf("fallbackReply(%q) intent = %q, want %q", tc.message, intent, tc.intent)
		}
	}
}
