// Package aiapi talks to the remote conversational AI backend. The
// caller treats any failure here as a signal to fall back to canned
// responses, so errors are reported, never retried.
package aiapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrBaseURLRequired indicates the backend URL is not configured.
var ErrBaseURLRequired = errors.New("aiapi: base url is required")

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL string
	client  *http.Client
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatInput struct {
	SessionID     string
	CourseContext string
	Message       string
	History       []HistoryMessage
}

type ChatOutput struct {
	Reply  string
	Intent string
}

type chatRequest struct {
	Message             string           `json:"message"`
	UserID              string           `json:"user_id"`
	SessionID           string           `json:"session_id"`
	CurrentPage         string           `json:"current_page,omitempty"`
	ConversationHistory []HistoryMessage `json:"conversation_history,omitempty"`
	IncludeMemory       bool             `json:"include_memory"`
}

// chatResponse tolerates the backend's field drift: the reply has shown
// up as response, message, and answer across versions.
type chatResponse struct {
	Response string `json:"response"`
	Message  string `json:"message"`
	Answer   string `json:"answer"`
	Intent   string `json:"intent"`
}

func (c *Client) Chat(ctx context.Context, in ChatInput) (*ChatOutput, error) {
	body, err := json.Marshal(chatRequest{
		Message:             in.Message,
		UserID:              "anonymous",
		SessionID:           in.SessionID,
		CurrentPage:         in.CourseContext,
		ConversationHistory: in.History,
		IncludeMemory:       true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", in.SessionID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("aiapi: chat request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("aiapi: chat status %d: %s", resp.StatusCode, raw)
	}

	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return nil, fmt.Errorf("aiapi: decode chat response: %w", err)
	}

	reply := cr.Response
	if reply == "" {
		reply = cr.Message
	}
	if reply == "" {
		reply = cr.Answer
	}
	if reply == "" {
		return nil, errors.New("aiapi: empty reply")
	}

	return &ChatOutput{Reply: reply, Intent: cr.Intent}, nil
}
