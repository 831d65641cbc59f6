package aiapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrBaseURLRequired) {
		t.Fatalf("err = %v, want ErrBaseURLRequired", err)
	}
}

func TestChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" {
			t.Errorf("path = %q, want /chat", r.URL.Path)
		}
		if got := r.Header.Get("X-Session-ID"); got != "sess-1" {
			t.Errorf("session header = %q", got)
		}

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["message"] != "hi" {
			t.Errorf("message = %v", req["message"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response": "Hello from the backend", "intent": "greeting"}`))
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err := c.Chat(context.Background(), ChatInput{SessionID: "sess-1", Message: "hi"})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if out.Reply != "Hello from the backend" || out.Intent != "greeting" {
		t.Fatalf("unexpected output %+v", out)
	}
}

func TestChatToleratesAlternateReplyFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"answer": "from the answer field"}`))
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err := c.Chat(context.Background(), ChatInput{SessionID: "s", Message: "m"})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if out.Reply != "from the answer field" {
		t.Fatalf("reply = %q", out.Reply)
	}
}

func TestChatRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.Chat(context.Background(), ChatInput{SessionID: "s", Message: "m"}); err == nil {
		t.Fatal("expected an error")
	}
}
