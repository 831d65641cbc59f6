package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/learnnect/platform-api/internal/chatbot/entity"
	"github.com/learnnect/platform-api/internal/chatbot/outbound/aiapi"
	"github.com/learnnect/platform-api/internal/pkg/goerror"
)

type SendMessageInput struct {
	SessionID string `validate:"required"`
	Message   string `validate:"required,max=2000"`
}

type SendMessageOutput struct {
	Reply    string
	Intent   string
	Fallback bool
}

// SendMessage appends the visitor's message to the transcript, asks the
// AI backend for a reply, and falls back to rule-based responses when
// the backend is unreachable. The session TTL is refreshed either way.
func (s *Usecase) SendMessage(ctx context.Context, in SendMessageInput) (*SendMessageOutput, error) {
	ctx, span := s.startSpan(ctx, "SendMessage")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	sess, err := s.store.Get(ctx, in.SessionID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Chat session not found or expired", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to load chat session", "session_id", in.SessionID, "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	sess.Messages = append(sess.Messages, entity.Message{
		Role:      entity.RoleUser,
		Content:   in.Message,
		CreatedAt: now,
	})

	out := s.reply(ctx, sess, in.Message)

	sess.Messages = append(sess.Messages, entity.Message{
		Role:      entity.RoleAssistant,
		Content:   out.Reply,
		Intent:    out.Intent,
		Fallback:  out.Fallback,
		CreatedAt: now,
	})

	if err := s.store.Put(ctx, *sess, s.sessionTTL()); err != nil {
		slog.ErrorContext(ctx, "failed to store chat session", "session_id", sess.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return out, nil
}

func (s *Usecase) reply(ctx context.Context, sess *entity.Session, message string) *SendMessageOutput {
	history := make([]aiapi.HistoryMessage, 0, len(sess.Messages))
	start := 0
	if limit := s.historyLimit(); len(sess.Messages) > limit {
		start = len(sess.Messages) - limit
	}
	for _, m := range sess.Messages[start:] {
		history = append(history, aiapi.HistoryMessage{Role: string(m.Role), Content: m.Content})
	}

	out, err := s.ai.Chat(ctx, aiapi.ChatInput{
		SessionID:     sess.ID,
		CourseContext: sess.CourseContext,
		Message:       message,
		History:       history,
	})
	if err != nil {
		slog.WarnContext(ctx, "ai backend unavailable, using fallback response", "session_id", sess.ID, "error", err)
		reply, intent := fallbackReply(message)
		return &SendMessageOutput{Reply: reply, Intent: intent, Fallback: true}
	}

	return &SendMessageOutput{Reply: out.Reply, Intent: out.Intent}
}

// fallbackReply mirrors the canned responses the web widget shipped with,
// keyed on the same keywords in the same order.
func fallbackReply(message string) (reply, intent string) {
	msg := strings.ToLower(message)
	contains := func(subs ...string) bool {
		for _, sub := range subs {
			if strings.Contains(msg, sub) {
				return true
			}
		}
		return false
	}

	switch {
	case contains("price", "cost", "fee"):
		return "Let's talk about investment in your future! Our courses are competitively priced with flexible payment options. We offer early bird discounts, installment plans, and scholarship opportunities. The investment varies by course duration and complexity. Want me to connect you with our admissions team for detailed pricing?",
			"pricing_inquiry"

	case contains("course", "learn"):
		return "Excellent! You're ready to level up your skills! We offer comprehensive programs in Data Science, Machine Learning, Web Development, and AI. Each course includes hands-on projects, expert mentorship, and job placement assistance. Which area interests you most?",
			"course_inquiry"

	case contains("appointment", "book", "schedule"):
		return "I'd be thrilled to help you book an appointment! Our counselors are available Monday to Friday, 9 AM to 6 PM. You can schedule a free consultation to discuss your learning goals and find the perfect course for your career path. Ready to book your spot?",
			"booking_request"

	case contains("hello", "hi", "hey"):
		return "Hello! Welcome to Learnnect! I'm ConnectBot, your AI learning assistant. I'm here to help you explore our courses, pricing, booking options, and answer any questions about your learning journey. What can I help you with today?",
			"greeting"

	case contains("help", "support"):
		return "I'm here to help! I can assist you with course information, pricing details, scheduling appointments, technical support, and answering questions about our learning platform. What specific area can I help you with?",
			"support_request"

	default:
		return "Thanks for reaching out! I'm ConnectBot, your AI learning assistant. I'm here to help you with courses, pricing, bookings, and any questions about Learnnect. What can I help you with today?",
			"general_inquiry"
	}
}
