package usecase

import (
	"context"
	"log/slog"

	"github.com/learnnect/platform-api/internal/chatbot/entity"
	"github.com/learnnect/platform-api/internal/pkg/goerror"
)

type CreateSessionInput struct {
	CourseContext string
}

type CreateSessionOutput struct {
	Session entity.Session
}

// CreateSession opens a conversation. The returned session carries all
// conversation state; callers pass its ID with every message.
func (s *Usecase) CreateSession(ctx context.Context, in CreateSessionInput) (*CreateSessionOutput, error) {
	ctx, span := s.startSpan(ctx, "CreateSession")
	defer span.End()

	sess := entity.Session{
		ID:            s.uid.Generate(),
		CourseContext: in.CourseContext,
		CreatedAt:     s.clock.Now(),
	}

	if err := s.store.Put(ctx, sess, s.sessionTTL()); err != nil {
		slog.ErrorContext(ctx, "failed to store chat session", "session_id", sess.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CreateSessionOutput{Session: sess}, nil
}
