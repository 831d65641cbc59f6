package googleauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newClient(t *testing.T) *Client {
	t.Helper()

	c, err := New(Config{ClientID: "client-123", ClientSecret: "secret"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNewRequiresClientID(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrClientIDRequired) {
		t.Fatalf("err = %v, want ErrClientIDRequired", err)
	}
}

func TestVerifyIDToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id_token"); got != "tok-1" {
			t.Errorf("id_token = %q, want tok-1", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"sub": "110248495921238986420",
			"aud": "client-123",
			"email": "arjun@example.com",
			"email_verified": "true",
			"name": "Arjun Mehta",
			"picture": "https://lh3.googleusercontent.com/a/photo"
		}`))
	}))
	defer srv.Close()

	c := newClient(t)
	c.tokenInfoURL = srv.URL

	p, err := c.VerifyIDToken(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("VerifyIDToken: %v", err)
	}
	if p.Email != "arjun@example.com" || p.FullName != "Arjun Mehta" {
		t.Fatalf("unexpected profile %+v", p)
	}
}

func TestVerifyIDTokenAudienceMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"sub": "1", "aud": "someone-else", "email_verified": "true"}`))
	}))
	defer srv.Close()

	c := newClient(t)
	c.tokenInfoURL = srv.URL

	if _, err := c.VerifyIDToken(context.Background(), "tok-1"); !errors.Is(err, ErrAudienceMismatch) {
		t.Fatalf("err = %v, want ErrAudienceMismatch", err)
	}
}

func TestVerifyIDTokenUnverifiedEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"sub": "1", "aud": "client-123", "email_verified": "false"}`))
	}))
	defer srv.Close()

	c := newClient(t)
	c.tokenInfoURL = srv.URL

	if _, err := c.VerifyIDToken(context.Background(), "tok-1"); !errors.Is(err, ErrEmailUnverified) {
		t.Fatalf("err = %v, want ErrEmailUnverified", err)
	}
}
