package inbound

import (
	"github.com/learnnect/platform-api/internal/chatbot/usecase"
	"github.com/learnnect/platform-api/internal/pkg/router"
)

// HTTPEndpoint exposes visitor chat: opening a session and exchanging
// messages within it.
type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) CreateSession(r *router.Request) (any, error) {
	var req CreateSessionRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.CreateSession(r.Context(), usecase.CreateSessionInput{
		CourseContext: req.CourseContext,
	})
	if err != nil {
		return nil, err
	}

	return CreateSessionResponse{
		SessionID:     resp.Session.ID,
		CourseContext: resp.Session.CourseContext,
		CreatedAt:     resp.Session.CreatedAt,
	}, nil
}

func (h *HTTPEndpoint) SendMessage(r *router.Request) (any, error) {
	var req SendMessageRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SendMessage(r.Context(), usecase.SendMessageInput{
		SessionID: r.GetParam("id"),
		Message:   req.Message,
	})
	if err != nil {
		return nil, err
	}

	return SendMessageResponse{
		Reply:    resp.Reply,
		Intent:   resp.Intent,
		Fallback: resp.Fallback,
	}, nil
}
