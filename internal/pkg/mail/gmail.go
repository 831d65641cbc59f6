package mail

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// ErrGmailCredentialsRequired is returned when the OAuth client credentials
// or refresh token are missing.
var ErrGmailCredentialsRequired = errors.New("gmail client id, secret, and refresh token are required")

// Gmail is a Mail implementation backed by the Gmail API, sending on behalf
// of a business account authorized once via OAuth consent.
type Gmail struct {
	svc         *gmail.Service
	defaultFrom string
}

// GmailConfig configures the Gmail implementation.
type GmailConfig struct {
	// ClientID is the OAuth 2.0 client ID.
	ClientID string
	// ClientSecret is the OAuth 2.0 client secret.
	ClientSecret string
	// RefreshToken is the long-lived token from the one-time consent flow.
	RefreshToken string
	// From is the default sender when Message.From is empty.
	From string
}

// NewGmail constructs a Gmail API mail sender.
func NewGmail(ctx context.Context, cfg GmailConfig) (*Gmail, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" {
		return nil, ErrGmailCredentialsRequired
	}

	oc := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailSendScope},
	}
	ts := oc.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})

	svc, err := gmail.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, err
	}

	return &Gmail{svc: svc, defaultFrom: cfg.From}, nil
}

// Send delivers a message through the Gmail API as the authorized user.
func (g *Gmail) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 && len(msg.Cc) == 0 && len(msg.Bcc) == 0 {
		return ErrSMTPNoRecipients
	}

	from := msg.From
	if from == "" {
		from = g.defaultFrom
	}
	if from == "" {
		return ErrSMTPNoSender
	}

	body, contentType := buildBody(msg)

	var headers []string
	headers = append(headers, fmt.Sprintf("From: %s", from))
	headers = append(headers, fmt.Sprintf("To: %s", strings.Join(msg.To, ", ")))
	if len(msg.Cc) > 0 {
		headers = append(headers, fmt.Sprintf("Cc: %s", strings.Join(msg.Cc, ", ")))
	}
	if len(msg.Bcc) > 0 {
		headers = append(headers, fmt.Sprintf("Bcc: %s", strings.Join(msg.Bcc, ", ")))
	}
	headers = append(headers, fmt.Sprintf("Subject: %s", msg.Subject))
	headers = append(headers, "MIME-Version: 1.0")
	headers = append(headers, fmt.Sprintf("Content-Type: %s", contentType))

	raw := strings.Join(headers, "\r\n") + "\r\n\r\n" + body

	_, err := g.svc.Users.Messages.
		Send("me", &gmail.Message{Raw: base64.URLEncoding.EncodeToString([]byte(raw))}).
		Context(ctx).
		Do()

	return err
}

// Close implements io.Closer for interface compatibility.
func (g *Gmail) Close() error {
	return nil
}
