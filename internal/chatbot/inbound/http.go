package inbound

import (
	"context"

	"github.com/learnnect/platform-api/internal/chatbot/usecase"
	"github.com/learnnect/platform-api/internal/pkg/router"
)

type uc interface {
	CreateSession(ctx context.Context, in usecase.CreateSessionInput) (*usecase.CreateSessionOutput, error)
	SendMessage(ctx context.Context, in usecase.SendMessageInput) (*usecase.SendMessageOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/chatbot/sessions", end.CreateSession)
	r.POST("/api/v1/chatbot/sessions/:id/messages", end.SendMessage)
}
