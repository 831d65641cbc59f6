package inbound

import "time"

type CreateSessionRequest struct {
	CourseContext string `json:"course_context,omitempty"`
}

type CreateSessionResponse struct {
	SessionID     string    `json:"session_id"`
	CourseContext string    `json:"course_context,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type SendMessageRequest struct {
	Message string `json:"message"`
}

type SendMessageResponse struct {
	Reply    string `json:"reply"`
	Intent   string `json:"intent,omitempty"`
	Fallback bool   `json:"fallback"`
}
